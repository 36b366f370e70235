package scheduler

import "time"

// Participant identifies one side of a meeting.
type Participant struct {
	ID       string
	Name     string
	LinkedIn string
}

// Role tells which side of a meeting a user submits for.
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Meeting is the shared record coordinating one host and guest. Its JSON form
// is the persisted document.
type Meeting struct {
	ID            string   `json:"id"`
	HostID        string   `json:"hostId"`
	HostName      string   `json:"hostName"`
	HostLinkedIn  string   `json:"hostLinkedIn"`
	GuestID       *string  `json:"guestId"`
	GuestName     *string  `json:"guestName"`
	GuestLinkedIn string   `json:"guestLinkedIn"`
	Status        Status   `json:"status"`
	HostSlots     []string `json:"hostSlots"`
	GuestSlots    []string `json:"guestSlots"`
	HostLikes     []string `json:"hostLikes"`
	GuestLikes    []string `json:"guestLikes"`
	AgreedTime    *string  `json:"agreedTime"`
	AgreedCafe    *string  `json:"agreedCafe"`
	CreatedAt     int64    `json:"createdAt"`
}

// NewMeeting returns a pending meeting with empty preference lists.
func NewMeeting(code string, host Participant, guestLinkedIn string, createdAt time.Time) Meeting {
	return Meeting{
		ID:            code,
		HostID:        host.ID,
		HostName:      host.Name,
		HostLinkedIn:  host.LinkedIn,
		GuestLinkedIn: guestLinkedIn,
		Status:        StatusPending,
		HostSlots:     []string{},
		GuestSlots:    []string{},
		HostLikes:     []string{},
		GuestLikes:    []string{},
		CreatedAt:     createdAt.UnixMilli(),
	}
}

// Normalize replaces nil lists and unknown statuses left by older or
// hand-edited records.
func (m *Meeting) Normalize() {
	if m.HostSlots == nil {
		m.HostSlots = []string{}
	}
	if m.GuestSlots == nil {
		m.GuestSlots = []string{}
	}
	if m.HostLikes == nil {
		m.HostLikes = []string{}
	}
	if m.GuestLikes == nil {
		m.GuestLikes = []string{}
	}
	if !m.Status.Valid() {
		m.Status = StatusPending
	}
}

// RoleOf returns RoleHost when userID is the host and RoleGuest otherwise.
func (m Meeting) RoleOf(userID string) Role {
	if userID == m.HostID {
		return RoleHost
	}
	return RoleGuest
}

// Join records the guest and moves the meeting to at least availability.
// Joining again overwrites the guest fields.
func (m *Meeting) Join(guest Participant) {
	id, name := guest.ID, guest.Name
	m.GuestID = &id
	m.GuestName = &name
	m.Status = m.Status.Advance(StatusAvailability)
}

// SubmitSlots stores the caller's availability. Once both sides have
// submitted, the agreed time is recomputed from the two lists and the
// meeting moves to at least swiping, even when no slot overlaps.
func (m *Meeting) SubmitSlots(userID string, slots []string) {
	slots = Dedupe(slots)
	if m.RoleOf(userID) == RoleHost {
		m.HostSlots = slots
	} else {
		m.GuestSlots = slots
	}

	if len(m.HostSlots) == 0 || len(m.GuestSlots) == 0 {
		return
	}
	m.AgreedTime = nil
	if agreed, ok := FirstOverlap(m.HostSlots, m.GuestSlots); ok {
		m.AgreedTime = &agreed
	}
	m.Status = m.Status.Advance(StatusSwiping)
}

// SubmitLikes stores the caller's liked venues. Once both sides have liked
// something and no venue is agreed yet, the first mutual venue confirms the
// meeting. Without a mutual venue the meeting stays in swiping.
func (m *Meeting) SubmitLikes(userID string, likes []string) {
	likes = Dedupe(likes)
	if m.RoleOf(userID) == RoleHost {
		m.HostLikes = likes
	} else {
		m.GuestLikes = likes
	}

	if m.AgreedCafe != nil || len(m.HostLikes) == 0 || len(m.GuestLikes) == 0 {
		return
	}
	if venue, ok := FirstMutual(m.HostLikes, m.GuestLikes); ok {
		m.AgreedCafe = &venue
		m.Status = m.Status.Advance(StatusConfirmed)
	}
}

// Stuck reports the terminal no-overlap outcome: both sides liked venues but
// none is shared.
func (m Meeting) Stuck() bool {
	return m.Status == StatusSwiping && m.AgreedCafe == nil &&
		len(m.HostLikes) > 0 && len(m.GuestLikes) > 0
}

// HasParticipant reports whether userID is the host or the joined guest.
func (m Meeting) HasParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	return userID == m.HostID || (m.GuestID != nil && *m.GuestID == userID)
}
