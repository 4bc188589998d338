package parsing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// averageMonth is the mean Gregorian month, used for fractional months.
const averageMonth = time.Duration(30.436875 * 24 * float64(time.Hour))

// maxSpanSeconds keeps the sub-month part of a span inside time.Duration.
const maxSpanSeconds = float64(math.MaxInt64 / int64(time.Second))

// TimeSpanToken is a duration counted from the start time.
type TimeSpanToken struct {
	Years   float64
	Months  float64
	Weeks   float64
	Days    float64
	Hours   float64
	Minutes float64
	Seconds float64
}

type spanUnit struct {
	name  string
	value func(*TimeSpanToken) *float64
}

// spanUnits lists the units from largest to smallest; names double as regex
// group names and resource key prefixes.
var spanUnits = []spanUnit{
	{"years", func(t *TimeSpanToken) *float64 { return &t.Years }},
	{"months", func(t *TimeSpanToken) *float64 { return &t.Months }},
	{"weeks", func(t *TimeSpanToken) *float64 { return &t.Weeks }},
	{"days", func(t *TimeSpanToken) *float64 { return &t.Days }},
	{"hours", func(t *TimeSpanToken) *float64 { return &t.Hours }},
	{"minutes", func(t *TimeSpanToken) *float64 { return &t.Minutes }},
	{"seconds", func(t *TimeSpanToken) *float64 { return &t.Seconds }},
}

// Valid reports whether every component is a finite, non-negative number.
func (t *TimeSpanToken) Valid() bool {
	if t == nil {
		return false
	}
	for _, u := range spanUnits {
		v := *u.value(t)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// EndTime adds the span to start. Whole months and years follow the calendar;
// a fractional month counts as an average-length month.
func (t *TimeSpanToken) EndTime(start time.Time) (time.Time, error) {
	if !t.Valid() {
		return time.Time{}, fmt.Errorf("%w: time span token is not valid", ErrInvalidOperation)
	}

	months := t.Years*12 + t.Months
	if months > float64(12*(maxYear-start.Year()+1)) {
		return time.Time{}, fmt.Errorf("%w: time span ends after year %d", ErrInvalidOperation, maxYear)
	}
	whole, frac := math.Modf(months)

	seconds := frac*averageMonth.Seconds() +
		t.Weeks*7*24*3600 +
		t.Days*24*3600 +
		t.Hours*3600 +
		t.Minutes*60 +
		t.Seconds
	if seconds > maxSpanSeconds {
		return time.Time{}, fmt.Errorf("%w: time span is too long", ErrInvalidOperation)
	}

	end := addMonths(start, int(whole)).Add(time.Duration(seconds * float64(time.Second)))
	if end.Year() > maxYear {
		return time.Time{}, fmt.Errorf("%w: time span ends after year %d", ErrInvalidOperation, maxYear)
	}
	return end, nil
}

// addMonths moves t by n calendar months, clamping the day to the end of a
// shorter target month (Jan 31 + 1 month is Feb 28 or 29).
func addMonths(t time.Time, n int) time.Time {
	total := t.Year()*12 + int(t.Month()) - 1 + n
	year, month := total/12, total%12+1
	day := min(t.Day(), daysIn(year, month))
	return time.Date(year, time.Month(month), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// Format renders the span for display, e.g. "1 hour 30 minutes".
func (t *TimeSpanToken) Format(p Provider) string {
	if !t.Valid() {
		return fmt.Sprintf("%T", t)
	}

	var parts []string
	for _, u := range spanUnits {
		v := *u.value(t)
		if v == 0 {
			continue
		}
		key := "time_span." + u.name + "_plural"
		if v == 1 {
			key = "time_span." + u.name + "_singular"
		}
		parts = append(parts, formatResource(p.Resource(key), strconv.FormatFloat(v, 'f', -1, 64)))
	}

	if len(parts) == 0 {
		return p.Resource("time_span.zero_format")
	}
	return strings.Join(parts, p.Resource("time_span.separator"))
}

// timeSpanPatterns returns the duration patterns in the order they are tried,
// each wrapped in the optional "in"/"for" lead-in.
func timeSpanPatterns(p Provider) []string {
	wrap := p.Resource("time_span.pattern_format")
	if strings.TrimSpace(wrap) == "" {
		wrap = `^\s*{0}\s*$`
	}

	var out []string
	for _, f := range fragments(p, "time_span.number_pattern", "time_span.colon_pattern", "time_span.units_pattern") {
		out = append(out, formatResource(wrap, f))
	}
	return out
}

// parseTimeSpan builds a span from a duration pattern match. At least one unit
// group must have participated.
func parseTimeSpan(m match, p Provider) (*TimeSpanToken, error) {
	ones := strings.Split(p.Resource("time_span.one_words"), ",")

	t := &TimeSpanToken{}
	found := false
	for _, u := range spanUnits {
		s, ok := m.group(u.name)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		v, err := parseSpanNumber(s, ones)
		if err != nil {
			return nil, fmt.Errorf("%w: bad %s %q", ErrFormat, u.name, s)
		}
		*u.value(t) = v
		found = true
	}

	if !found {
		return nil, fmt.Errorf("%w: no duration units", ErrFormat)
	}
	return t, nil
}

func parseSpanNumber(s string, ones []string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, w := range ones {
		if w = strings.TrimSpace(w); w != "" && strings.EqualFold(s, w) {
			return 1, nil
		}
	}
	return strconv.ParseFloat(s, 64)
}

func compileTimeSpanPatterns(p Provider, warn func(pattern string, err error)) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, pat := range timeSpanPatterns(p) {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			warn(pat, err)
			continue
		}
		out = append(out, re)
	}
	return out
}
