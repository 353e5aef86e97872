package services

import (
	"time"

	"github.com/travelbook/booking-backend/internal/models"
)

const dateLayout = "2006-01-02"

// normalizeDay reduces a date value to calendar-day granularity.
// Stored entries may carry a time component (RFC 3339 timestamps);
// comparison always happens on the YYYY-MM-DD prefix.
func normalizeDay(date string) string {
	if len(date) > len(dateLayout) {
		return date[:len(dateLayout)]
	}
	return date
}

// parseDay parses a date-only value, tolerating a trailing time component
func parseDay(date string) (time.Time, error) {
	day, err := time.Parse(dateLayout, normalizeDay(date))
	if err != nil {
		return time.Time{}, models.NewValidationError("invalid date: " + date)
	}
	return day, nil
}

// DatesInRange returns every calendar day from start to end inclusive,
// ascending, stepping by exactly one day. Time-of-day on the inputs is
// ignored.
func DatesInRange(start, end string) ([]string, error) {
	from, err := parseDay(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDay(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, models.NewValidationError("endDate cannot be before startDate")
	}

	var dates []string
	for current := from; !current.After(to); current = current.AddDate(0, 0, 1) {
		dates = append(dates, current.Format(dateLayout))
	}
	return dates, nil
}

// IsRangeAvailable reports whether no day in [start, end] appears in the
// unit's unavailable-date set, matching by calendar day.
func IsRangeAvailable(unavailable []string, start, end string) (bool, error) {
	dates, err := DatesInRange(start, end)
	if err != nil {
		return false, err
	}

	taken := make(map[string]struct{}, len(unavailable))
	for _, date := range unavailable {
		taken[normalizeDay(date)] = struct{}{}
	}

	for _, date := range dates {
		if _, ok := taken[date]; ok {
			return false, nil
		}
	}
	return true, nil
}

// ContainsDay reports whether the given day is a member of the date set,
// matching by calendar day. Used for tour date membership.
func ContainsDay(dates []string, day string) bool {
	want := normalizeDay(day)
	for _, date := range dates {
		if normalizeDay(date) == want {
			return true
		}
	}
	return false
}

// BlockDates adds every day in [start, end] to the unavailable-date set.
// Days already present are not duplicated, so a retried block is a no-op
// in effect.
func BlockDates(unavailable []string, start, end string) ([]string, error) {
	dates, err := DatesInRange(start, end)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(unavailable))
	result := make([]string, 0, len(unavailable)+len(dates))
	for _, date := range unavailable {
		present[normalizeDay(date)] = struct{}{}
		result = append(result, date)
	}

	for _, date := range dates {
		if _, ok := present[date]; !ok {
			present[date] = struct{}{}
			result = append(result, date)
		}
	}
	return result, nil
}

// UnblockDates removes every day in [start, end] from the unavailable-date
// set. All occurrences of a matching day are removed, so duplicated
// entries cannot survive a release.
func UnblockDates(unavailable []string, start, end string) ([]string, error) {
	dates, err := DatesInRange(start, end)
	if err != nil {
		return nil, err
	}

	remove := make(map[string]struct{}, len(dates))
	for _, date := range dates {
		remove[date] = struct{}{}
	}

	result := make([]string, 0, len(unavailable))
	for _, date := range unavailable {
		if _, ok := remove[normalizeDay(date)]; ok {
			continue
		}
		result = append(result, date)
	}
	return result, nil
}
