package venues

var images = []string{
	"https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1445116572660-236099ec97a0?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1554118811-1e0d58224f24?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1521017432531-fbd92d768814?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1461023058943-07fcbe16d735?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1516062423079-7ca13cdc7f5a?w=400&h=300&fit=crop",
}

var seed = []Venue{
	{
		ID: "ritual_coffee", Name: "Ritual Coffee Roasters", Address: "1026 Valencia St, San Francisco, CA",
		Rating: 4.5, Tags: []string{"pour over", "specialty", "cozy", "wifi"}, Hours: "7am – 8pm",
		Lat: 37.7583, Lon: -122.4213, Image: images[0],
	},
	{
		ID: "sightglass", Name: "Sightglass Coffee", Address: "270 7th St, San Francisco, CA",
		Rating: 4.4, Tags: []string{"airy", "industrial", "meetings", "espresso"}, Hours: "7am – 7pm",
		Lat: 37.7751, Lon: -122.4094, Image: images[1],
	},
	{
		ID: "blue_bottle", Name: "Blue Bottle Coffee", Address: "315 Linden St, San Francisco, CA",
		Rating: 4.3, Tags: []string{"minimalist", "queue-worthy", "precision", "espresso"}, Hours: "7am – 6pm",
		Lat: 37.7756, Lon: -122.4261, Image: images[2],
	},
	{
		ID: "four_barrel", Name: "Verve Coffee Roasters", Address: "2101 Market St, San Francisco, CA",
		Rating: 4.2, Tags: []string{"light roast", "bright", "sunny", "laptop-friendly"}, Hours: "7am – 7pm",
		Lat: 37.7644, Lon: -122.4356, Image: images[3],
	},
	{
		ID: "philz", Name: "Philz Coffee", Address: "748 Van Ness Ave, San Francisco, CA",
		Rating: 4.6, Tags: []string{"customized", "social", "blends", "community"}, Hours: "6am – 10pm",
		Lat: 37.7814, Lon: -122.4210, Image: images[4],
	},
	{
		ID: "equator", Name: "Equator Coffees", Address: "986 Market St, San Francisco, CA",
		Rating: 4.4, Tags: []string{"ethical", "certified", "warm", "neighborhood"}, Hours: "7am – 6pm",
		Lat: 37.7820, Lon: -122.4147, Image: images[5],
	},
	{
		ID: "verve", Name: "Sextant Coffee Roasters", Address: "1415 Folsom St, San Francisco, CA",
		Rating: 4.3, Tags: []string{"hidden gem", "pour over", "quiet", "focused"}, Hours: "8am – 5pm",
		Lat: 37.7710, Lon: -122.4133, Image: images[6],
	},
}

// Seed returns the fixed fallback catalogue.
func Seed() []Venue {
	out := make([]Venue, len(seed))
	for i, v := range seed {
		v.Tags = append([]string(nil), v.Tags...)
		out[i] = v
	}
	return out
}

// SeedByID returns the seed venue with the given id.
func SeedByID(id string) (Venue, bool) {
	for _, v := range seed {
		if v.ID == id {
			v.Tags = append([]string(nil), v.Tags...)
			return v, true
		}
	}
	return Venue{}, false
}
