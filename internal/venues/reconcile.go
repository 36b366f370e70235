package venues

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MatchRadiusMeters bounds how far a fetched venue may lie from a seed venue
// with the same name and still be treated as the same place.
const MatchRadiusMeters = 300

// normalizeName folds case and compatibility forms and drops everything but
// letters and digits, so "Philz Coffee" and "PHILZ  coffee!" compare equal.
func normalizeName(name string) string {
	// Casers are stateful, so each call gets its own.
	folded := cases.Fold().String(norm.NFKC.String(name))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Reconcile gives fetched venues the id of the seed venue they describe. A
// fetched venue matches a seed venue when their normalised names are equal
// and they lie within MatchRadiusMeters. Unmatched venues keep their id.
// When several fetched venues resolve to the same id only the first is kept.
func Reconcile(fetched, catalogue []Venue) []Venue {
	byName := make(map[string][]Venue, len(catalogue))
	for _, v := range catalogue {
		key := normalizeName(v.Name)
		byName[key] = append(byName[key], v)
	}

	out := make([]Venue, 0, len(fetched))
	seen := make(map[string]struct{}, len(fetched))
	for _, v := range fetched {
		for _, candidate := range byName[normalizeName(v.Name)] {
			if distanceMeters(v.Lat, v.Lon, candidate.Lat, candidate.Lon) <= MatchRadiusMeters {
				v.ID = candidate.ID
				break
			}
		}
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}
