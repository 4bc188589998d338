package parsing

import (
	"strconv"
	"strings"
)

// Provider supplies the culture-sensitive grammar fragments and display
// strings. Implementations must be safe for concurrent use.
type Provider interface {
	// Name identifies the culture. Compiled patterns are cached by name
	// together with a digest of the pattern resources, so two providers may
	// share a name without sharing patterns.
	Name() string
	// Resource returns the resource stored under a dotted key, or "".
	Resource(key string) string
	// IsMonthFirst reports whether numeric dates are month/day/year.
	IsMonthFirst() bool
	// IsYearFirst reports whether numeric dates are year/month/day.
	IsYearFirst() bool
	// Prefer24Hour reports whether bare hours use the 24-hour clock.
	Prefer24Hour() bool
}

// formatResource substitutes positional {0}, {1}, ... arguments.
func formatResource(format string, args ...string) string {
	if len(args) == 0 {
		return format
	}
	pairs := make([]string, 0, 2*len(args))
	for i, a := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", a)
	}
	return strings.NewReplacer(pairs...).Replace(format)
}

// fragment looks up a pattern resource and expands the shared {month} and
// {weekday} sub-patterns it may reference.
func fragment(p Provider, key string) string {
	s := p.Resource(key)
	if strings.Contains(s, "{month}") {
		s = strings.ReplaceAll(s, "{month}", p.Resource("normal_date.month_name_pattern"))
	}
	if strings.Contains(s, "{weekday}") {
		s = strings.ReplaceAll(s, "{weekday}", p.Resource("day_of_week.weekday_name_pattern"))
	}
	return s
}

// fragments looks up several pattern resources in order, dropping any the
// provider does not define.
func fragments(p Provider, keys ...string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if s := fragment(p, k); strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
