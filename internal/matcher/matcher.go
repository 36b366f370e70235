// Package matcher ranks alumni by how much their favourite venues overlap
// with a user's liked venues.
package matcher

import (
	"math"
	"sort"
)

// Candidate is one alumnus of the reference population.
type Candidate struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Graduation  int      `json:"graduation"`
	School      string   `json:"school"`
	Major       string   `json:"major"`
	Role        string   `json:"role"`
	Avatar      string   `json:"avatar"`
	Bio         string   `json:"bio"`
	LikedVenues []string `json:"likedVenues"`
	LinkedIn    string   `json:"linkedIn"`
	Email       string   `json:"email"`
}

// ScoredCandidate is a candidate with its overlap against a user's likes.
type ScoredCandidate struct {
	Candidate
	SharedVenues         []string `json:"sharedVenues"`
	Score                float64  `json:"score"`
	CompatibilityPercent int      `json:"compatibilityPercent"`
}

// Matcher scores a fixed candidate population.
type Matcher struct {
	population []Candidate
}

// New returns a Matcher over population. The slice is copied.
func New(population []Candidate) *Matcher {
	return &Matcher{population: append([]Candidate(nil), population...)}
}

// Population returns a copy of the candidates in their original order.
func (m *Matcher) Population() []Candidate {
	return append([]Candidate(nil), m.population...)
}

// FindMatches returns every candidate sharing at least one venue with liked,
// ordered by descending score. Equal scores keep population order.
//
// A candidate's score is the number of shared venues divided by the square
// root of the candidate's own list length, so selective candidates outrank
// ones who like everything.
func (m *Matcher) FindMatches(liked []string) []ScoredCandidate {
	results := []ScoredCandidate{}
	if m == nil || len(liked) == 0 {
		return results
	}

	likedSet := make(map[string]struct{}, len(liked))
	for _, id := range liked {
		likedSet[id] = struct{}{}
	}

	for _, candidate := range m.population {
		shared := make([]string, 0, len(candidate.LikedVenues))
		for _, venue := range candidate.LikedVenues {
			if _, ok := likedSet[venue]; ok {
				shared = append(shared, venue)
			}
		}
		if len(shared) == 0 {
			continue
		}

		score := float64(len(shared)) / math.Sqrt(float64(len(candidate.LikedVenues)))
		results = append(results, ScoredCandidate{
			Candidate:            candidate,
			SharedVenues:         shared,
			Score:                score,
			CompatibilityPercent: percent(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Best returns the highest ranked match, if any.
func (m *Matcher) Best(liked []string) (ScoredCandidate, bool) {
	matches := m.FindMatches(liked)
	if len(matches) == 0 {
		return ScoredCandidate{}, false
	}
	return matches[0], true
}

func percent(score float64) int {
	p := int(math.Round(score * 50))
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
