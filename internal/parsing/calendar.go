package parsing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

const (
	minYear = 1
	maxYear = 9999
)

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year, month int) int {
	switch time.Month(month) {
	case time.February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// makeDate builds midnight of the given calendar date, refusing to normalize
// out-of-range fields the way time.Date does.
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if year < minYear || year > maxYear || month < 1 || month > 12 || day < 1 || day > daysIn(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), true
}

func incrementMonth(year, month int) (int, int) {
	if month >= 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// validYMD reports whether the fields that are set can be part of a real
// calendar date. A missing year allows February 29.
func validYMD(year, month, day *int) bool {
	if year != nil && (*year < minYear || *year > maxYear) {
		return false
	}
	if month != nil && (*month < 1 || *month > 12) {
		return false
	}
	if day == nil {
		return true
	}
	if *day < 1 || *day > 31 {
		return false
	}
	if month == nil {
		return true
	}
	if year == nil {
		return *day <= daysIn(2000, *month)
	}
	return *day <= daysIn(*year, *month)
}

func monthName(month int, p Provider) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(month)
	}
	return p.Resource("month." + strings.ToLower(time.Month(month).String()))
}

func weekdayName(wd time.Weekday, p Provider) string {
	return p.Resource("day_of_week." + strings.ToLower(wd.String()))
}

// matchPrefix returns the index of the only name that starts with s, compared
// case-insensitively.
func matchPrefix(s string, names []string) (int, bool) {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(s))
	if needle == "" {
		return 0, false
	}

	found := -1
	for i, name := range names {
		if name == "" || !strings.HasPrefix(fold.String(name), needle) {
			continue
		}
		if found >= 0 {
			return 0, false
		}
		found = i
	}
	return found, found >= 0
}

// parseMonth resolves a spelled or abbreviated month name to 1..12.
func parseMonth(s string, p Provider) (int, error) {
	names := make([]string, 12)
	for m := 1; m <= 12; m++ {
		names[m-1] = monthName(m, p)
	}
	i, ok := matchPrefix(s, names)
	if !ok {
		return 0, fmt.Errorf("%w: unrecognized month %q", ErrFormat, s)
	}
	return i + 1, nil
}

// parseWeekday resolves a spelled or abbreviated day name.
func parseWeekday(s string, p Provider) (time.Weekday, error) {
	names := make([]string, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		names[wd] = weekdayName(wd, p)
	}
	i, ok := matchPrefix(s, names)
	if !ok {
		return 0, fmt.Errorf("%w: unrecognized day of week %q", ErrFormat, s)
	}
	return time.Weekday(i), nil
}

// ordinalDay renders 1 as "1st", 22 as "22nd", 13 as "13th".
func ordinalDay(day int, p Provider) string {
	key := "ordinal.th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			key = "ordinal.st"
		case 2:
			key = "ordinal.nd"
		case 3:
			key = "ordinal.rd"
		}
	}
	return formatResource(p.Resource(key), strconv.Itoa(day))
}

func atoiGroup(m match, name string) (int, bool, error) {
	s, ok := m.group(name)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, true, fmt.Errorf("%w: bad %s %q", ErrFormat, name, s)
	}
	return n, true, nil
}
