package venues

import "testing"

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Philz Coffee", want: "philzcoffee"},
		{in: "  PHILZ   coffee! ", want: "philzcoffee"},
		{in: "\uff22\uff4c\uff55\uff45 \uff22\uff4f\uff54\uff54\uff4c\uff45", want: "bluebottle"},
		{in: "Caf\u00e9 Stra\u00dfe", want: "caf\u00e9strasse"},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Fatalf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	fetched := []Venue{
		// Same name and position as the seed entry filed under four_barrel.
		{ID: "osm_10", Name: "Verve Coffee Roasters", Lat: 37.7645, Lon: -122.4357},
		// Same name, different city.
		{ID: "osm_11", Name: "Philz Coffee", Lat: 37.3318, Lon: -121.8863},
		// Close to a seed venue but a different business.
		{ID: "osm_12", Name: "Linden Deli", Lat: 37.7756, Lon: -122.4261},
		// Duplicate of the first after reconciliation.
		{ID: "osm_13", Name: "verve coffee roasters", Lat: 37.7644, Lon: -122.4356},
	}

	got := Reconcile(fetched, Seed())
	var ids []string
	for _, v := range got {
		ids = append(ids, v.ID)
	}
	want := []string{"four_barrel", "osm_11", "osm_12"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}
