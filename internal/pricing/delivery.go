package pricing

import (
	"regexp"
	"strconv"
	"time"
)

const (
	DefaultBusinessDays = 3
	// MaxBusinessDays bounds a delivery estimate to roughly one calendar year.
	MaxBusinessDays = 260
)

var leadingNumber = regexp.MustCompile(`^\s*(\d+)`)

// BusinessDays reads the leading integer of a range such as "3-5 business days".
func BusinessDays(estimate string) int {
	m := leadingNumber.FindStringSubmatch(estimate)
	if m == nil {
		return DefaultBusinessDays
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return DefaultBusinessDays
	}
	return min(n, MaxBusinessDays)
}

// AddBusinessDays returns the calendar date n working days after day, skipping Saturdays
// and Sundays. The time of day is dropped and n is capped at MaxBusinessDays.
func AddBusinessDays(day time.Time, n int) time.Time {
	n = min(n, MaxBusinessDays)
	y, m, d := day.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	for n > 0 {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n--
		}
	}
	return date
}
