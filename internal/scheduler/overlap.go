package scheduler

// Both resolvers follow the submitter-order first match policy: the host's
// list is scanned in the order the host submitted it and the first entry
// also present in the guest's list wins. Chronological or score based
// tie-breaks must not be substituted.

// FirstOverlap returns the first host slot that the guest also selected.
func FirstOverlap(hostSlots, guestSlots []string) (string, bool) {
	return firstMatch(hostSlots, guestSlots)
}

// FirstMutual returns the first venue in the host's likes that the guest
// also liked.
func FirstMutual(hostLikes, guestLikes []string) (string, bool) {
	return firstMatch(hostLikes, guestLikes)
}

func firstMatch(ordered, other []string) (string, bool) {
	if len(ordered) == 0 || len(other) == 0 {
		return "", false
	}
	present := make(map[string]struct{}, len(other))
	for _, id := range other {
		present[id] = struct{}{}
	}
	for _, id := range ordered {
		if _, ok := present[id]; ok {
			return id, true
		}
	}
	return "", false
}

// Dedupe drops repeated and empty identifiers while keeping first-occurrence
// order. The result is never nil.
func Dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
