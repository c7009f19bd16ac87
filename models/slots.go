package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SlotDateLayout is the calendar-date format used as the slot registry key.
const SlotDateLayout = "2006-01-02"

var slotTimePattern = regexp.MustCompile(`^(\d{1,2}):([0-5]\d)(\s?[AaPp][Mm])?$`)

// SlotsBooked maps a calendar date to the time-of-day strings already
// reserved on that date. A time appears at most once per date.
type SlotsBooked map[string][]string

// IsFree reports whether time t on date is not yet reserved.
func (s SlotsBooked) IsFree(date, t string) bool {
	for _, booked := range s[date] {
		if booked == t {
			return false
		}
	}
	return true
}

// Reserve adds t to the date's list. It returns false and leaves the
// registry unchanged when the slot is already taken.
func (s SlotsBooked) Reserve(date, t string) bool {
	if !s.IsFree(date, t) {
		return false
	}
	s[date] = append(s[date], t)
	return true
}

// Release removes t from the date's list. Releasing an absent time is a no-op.
func (s SlotsBooked) Release(date, t string) {
	times, ok := s[date]
	if !ok {
		return
	}
	kept := times[:0]
	for _, booked := range times {
		if booked != t {
			kept = append(kept, booked)
		}
	}
	s[date] = kept
}

// Clone returns a deep copy.
func (s SlotsBooked) Clone() SlotsBooked {
	out := make(SlotsBooked, len(s))
	for date, times := range s {
		out[date] = append([]string(nil), times...)
	}
	return out
}

// ValidSlotDate reports whether date is a real YYYY-MM-DD calendar date.
func ValidSlotDate(date string) bool {
	_, err := time.Parse(SlotDateLayout, date)
	return err == nil
}

// ValidSlotTime accepts 24h "HH:MM" or 12h "H:MM AM" forms.
func ValidSlotTime(t string) bool {
	m := slotTimePattern.FindStringSubmatch(strings.TrimSpace(t))
	if m == nil {
		return false
	}
	var hour int
	fmt.Sscanf(m[1], "%d", &hour)
	if m[3] != "" {
		return hour >= 1 && hour <= 12
	}
	return hour <= 23
}

// NormalizeSlotTime returns t in the 24h "15:04" form so that every spelling
// of one time of day maps to the same registry entry.
func NormalizeSlotTime(t string) (string, bool) {
	if !ValidSlotTime(t) {
		return "", false
	}
	value := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(t), " ", ""))
	for _, layout := range []string{"15:04", "3:04PM"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.Format("15:04"), true
		}
	}
	return "", false
}

// SlotStart resolves a slot to an instant in loc.
func SlotStart(date, t string, loc *time.Location) (time.Time, error) {
	canonical, ok := NormalizeSlotTime(t)
	if !ValidSlotDate(date) || !ok {
		return time.Time{}, fmt.Errorf("invalid slot %q %q", date, t)
	}
	return time.ParseInLocation(SlotDateLayout+" 15:04", date+" "+canonical, loc)
}
