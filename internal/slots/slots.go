// Package slots generates the rolling seven day grid of bookable hours and
// encodes individual slots as "<YYYY-MM-DD>|<hour label>" identifiers.
package slots

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// WindowDays is the number of contiguous days offered for scheduling.
	WindowDays = 7

	// DayKeyLayout formats the date component of a slot identifier.
	DayKeyLayout = "2006-01-02"

	separator = "|"

	firstHour = 8
)

// hourLabels lists the selectable hours of a day in display order. The first
// label is firstHour.
var hourLabels = []string{
	"8am", "9am", "10am", "11am", "12pm", "1pm",
	"2pm", "3pm", "4pm", "5pm", "6pm", "7pm",
}

// ErrMalformedSlot is returned when a slot identifier cannot be decoded.
var ErrMalformedSlot = errors.New("slots: malformed slot identifier")

// Day describes one column of the availability grid.
type Day struct {
	Key   string `json:"key"`
	Short string `json:"short"`
	Label string `json:"label"`
}

// HourLabels returns the selectable hours of a day in display order.
func HourLabels() []string {
	return append([]string(nil), hourLabels...)
}

// Window returns the WindowDays days starting at the reference date.
func Window(reference time.Time) []Day {
	start := midnight(reference)
	days := make([]Day, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		date := start.AddDate(0, 0, i)
		label := date.Format("Mon, Jan 2")
		switch i {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		}
		days = append(days, Day{
			Key:   date.Format(DayKeyLayout),
			Short: date.Format("Mon"),
			Label: label,
		})
	}
	return days
}

// Grid returns every slot identifier of the window, day-major.
func Grid(reference time.Time) []string {
	days := Window(reference)
	grid := make([]string, 0, len(days)*len(hourLabels))
	for _, day := range days {
		for _, hour := range hourLabels {
			grid = append(grid, Encode(day.Key, hour))
		}
	}
	return grid
}

// Encode joins a day key and an hour label into a slot identifier.
func Encode(dayKey, hour string) string {
	return dayKey + separator + hour
}

// Decode splits a slot identifier produced by Encode.
func Decode(slotID string) (dayKey, hour string, err error) {
	dayKey, hour, ok := strings.Cut(slotID, separator)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedSlot, slotID)
	}
	if _, err := time.Parse(DayKeyLayout, dayKey); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedSlot, slotID)
	}
	if hourIndex(hour) < 0 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedSlot, slotID)
	}
	return dayKey, hour, nil
}

// Valid reports whether slotID decodes.
func Valid(slotID string) bool {
	_, _, err := Decode(slotID)
	return err == nil
}

// Format renders a slot for display, e.g. "Monday, October 20 at 10am".
// Identifiers that do not decode are returned unchanged.
func Format(slotID string) string {
	dayKey, hour, err := Decode(slotID)
	if err != nil {
		return slotID
	}
	date, _ := time.Parse(DayKeyLayout, dayKey)
	return date.Format("Monday, January 2") + " at " + hour
}

// Start returns the instant a slot begins in loc.
func Start(slotID string, loc *time.Location) (time.Time, error) {
	dayKey, hour, err := Decode(slotID)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	date, err := time.Parse(DayKeyLayout, dayKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedSlot, slotID)
	}
	// Wall-clock construction keeps the labelled hour across DST changes.
	year, month, day := date.Date()
	return time.Date(year, month, day, firstHour+hourIndex(hour), 0, 0, 0, loc), nil
}

func hourIndex(hour string) int {
	for i, label := range hourLabels {
		if label == hour {
			return i
		}
	}
	return -1
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
