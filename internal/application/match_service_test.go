package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/coffee-chat/internal/matcher"
)

func TestMatchService_FindMatches(t *testing.T) {
	t.Parallel()

	svc := NewMatchServiceWithLogger(nil, nil, discardLogger())

	matches := svc.FindMatches(context.Background(), []string{"philz", "philz", "verve"})
	if len(matches) == 0 {
		t.Fatal("expected matches")
	}
	if matches[0].Name != "Marcus Johnson" || matches[0].CompatibilityPercent != 50 {
		t.Fatalf("unexpected top match %s (%d%%)", matches[0].Name, matches[0].CompatibilityPercent)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("matches not sorted at %d", i)
		}
	}

	if got := svc.FindMatches(context.Background(), nil); len(got) != 0 {
		t.Fatalf("expected no matches for empty likes, got %d", len(got))
	}
	if _, ok := svc.Best(context.Background(), []string{"osm_1"}); ok {
		t.Fatal("unknown venue should not match anyone")
	}
}

func TestMatchService_MatchesForMeeting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	meetings, _ := newMeetingService()
	host, guest := hostSession(), guestSession()

	if _, err := meetings.Create(ctx, host, "linkedin.com/in/gabe"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := meetings.Join(ctx, "ABC123", guest); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if _, err := meetings.SubmitVenueLikes(ctx, "ABC123", host.ID, []string{"a", "b"}); err != nil {
		t.Fatalf("SubmitVenueLikes failed: %v", err)
	}
	if _, err := meetings.SubmitVenueLikes(ctx, "ABC123", guest.ID, []string{"c"}); err != nil {
		t.Fatalf("SubmitVenueLikes failed: %v", err)
	}

	population := matcher.New([]matcher.Candidate{
		{ID: 1, Name: "Broad", LikedVenues: []string{"a", "b", "x", "y"}},
		{ID: 2, Name: "Selective", LikedVenues: []string{"a", "b"}},
		{ID: 3, Name: "Guest twin", LikedVenues: []string{"c"}},
	})
	svc := NewMatchServiceWithLogger(population, meetings, discardLogger())

	hostMatches, err := svc.MatchesForMeeting(ctx, "abc123", host.ID)
	if err != nil {
		t.Fatalf("MatchesForMeeting(host) failed: %v", err)
	}
	if len(hostMatches) != 2 || hostMatches[0].Name != "Selective" || hostMatches[0].CompatibilityPercent != 71 ||
		hostMatches[1].CompatibilityPercent != 50 {
		t.Fatalf("unexpected host matches %+v", hostMatches)
	}

	guestMatches, err := svc.MatchesForMeeting(ctx, "ABC123", guest.ID)
	if err != nil {
		t.Fatalf("MatchesForMeeting(guest) failed: %v", err)
	}
	if len(guestMatches) != 1 || guestMatches[0].Name != "Guest twin" {
		t.Fatalf("unexpected guest matches %+v", guestMatches)
	}

	if _, err := svc.MatchesForMeeting(ctx, "ABC123", "user_stranger"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for outsider, got %v", err)
	}
	if _, err := svc.MatchesForMeeting(ctx, "ZZZ999", host.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing meeting, got %v", err)
	}
}
