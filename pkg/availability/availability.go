// Package availability holds the pure booking-consistency calculations shared
// by the travel plan and booking services.
package availability

import "time"

const MinLeadDays = 7

// Midnight normalizes a timestamp to 00:00:00 of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EarliestStart is the first start date a new plan may use: seven days from
// now, midnight-normalized.
func EarliestStart(now time.Time) time.Time {
	return Midnight(now).AddDate(0, 0, MinLeadDays)
}

// Overlaps reports whether two inclusive date ranges intersect.
func Overlaps(newStart, newEnd, existingStart, existingEnd time.Time) bool {
	return !newStart.After(existingEnd) && !newEnd.Before(existingStart)
}

// RemainingSeats is how many guests can still join.
func RemainingSeats(maxGuest, occupied int) int {
	return maxGuest - occupied
}

// MeetsMinAge reports whether an age satisfies a plan's minimum.
func MeetsMinAge(age, minAge int) bool {
	return age >= minAge
}

// DuplicatePhones returns the phone numbers that appear more than once in a
// batch, in first-seen order.
func DuplicatePhones(phones []string) []string {
	seen := make(map[string]int, len(phones))
	var dups []string
	for _, phone := range phones {
		seen[phone]++
		if seen[phone] == 2 {
			dups = append(dups, phone)
		}
	}
	return dups
}
