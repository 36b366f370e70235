package scheduler

// Status is the lifecycle stage of a meeting.
type Status string

const (
	StatusPending      Status = "pending"
	StatusAvailability Status = "availability"
	StatusSwiping      Status = "swiping"
	StatusConfirmed    Status = "confirmed"
)

var statusRank = map[Status]int{
	StatusPending:      0,
	StatusAvailability: 1,
	StatusSwiping:      2,
	StatusConfirmed:    3,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank orders statuses along the lifecycle. Unknown values rank below pending.
func (s Status) Rank() int {
	rank, ok := statusRank[s]
	if !ok {
		return -1
	}
	return rank
}

// Advance returns the later of s and target, so a status never regresses.
func (s Status) Advance(target Status) Status {
	if target.Rank() > s.Rank() {
		return target
	}
	return s
}
