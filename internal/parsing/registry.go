package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// dateParser turns a regex match into one DateToken variant. patterns lists
// the fragments in the order they are tried.
type dateParser struct {
	name     string
	patterns func(Provider) []string
	parse    func(match, Provider) (DateToken, error)
	// refuses names the time parser this parser cannot be combined with.
	refuses string
}

type timeParser struct {
	name     string
	patterns func(Provider) []string
	parse    func(match, Provider) (TimeToken, error)
	refuses  string
}

// Registration order decides which reading of an ambiguous input wins.
var (
	dateParsers = []dateParser{
		{name: "empty", patterns: emptyPatterns, parse: parseEmptyDate, refuses: "empty"},
		{name: "normal", patterns: normalDatePatterns, parse: parseNormalDate},
		{name: "day_of_week", patterns: dayOfWeekPatterns, parse: parseDayOfWeekDate},
		{name: "relative", patterns: relativeDatePatterns, parse: parseRelativeDate},
		{name: "special", patterns: specialDatePatterns, parse: parseSpecialDate},
	}

	timeParsers = []timeParser{
		{name: "empty", patterns: emptyPatterns, parse: parseEmptyTime, refuses: "empty"},
		{name: "normal", patterns: normalTimePatterns, parse: parseNormalTime},
		{name: "special", patterns: specialTimePatterns, parse: parseSpecialTime},
	}
)

func emptyPatterns(Provider) []string { return []string{""} }

func parseEmptyDate(match, Provider) (DateToken, error) { return &EmptyDateToken{}, nil }

func parseEmptyTime(match, Provider) (TimeToken, error) { return &EmptyTimeToken{}, nil }

func normalDatePatterns(p Provider) []string {
	const prefix = "normal_date."
	keys := []string{
		"spelled_date_day_first_pattern",
		"spelled_date_month_first_pattern",
		"numerical_date_day_first_pattern",
		"numerical_date_month_first_pattern",
		"numerical_date_year_first_pattern",
	}
	switch {
	case p.IsMonthFirst():
		keys = []string{
			"spelled_date_month_first_pattern",
			"spelled_date_day_first_pattern",
			"numerical_date_month_first_pattern",
			"numerical_date_day_first_pattern",
			"numerical_date_year_first_pattern",
		}
	case p.IsYearFirst():
		keys = []string{
			"spelled_date_day_first_pattern",
			"spelled_date_month_first_pattern",
			"numerical_date_year_first_pattern",
			"numerical_date_day_first_pattern",
			"numerical_date_month_first_pattern",
		}
	}
	keys = append(keys,
		"day_only_pattern",
		"spelled_month_and_optional_year_pattern",
		"numerical_month_and_year_pattern")

	for i, k := range keys {
		keys[i] = prefix + k
	}
	return fragments(p, keys...)
}

func parseNormalDate(m match, p Provider) (DateToken, error) {
	d := &NormalDateToken{}

	day, ok, err := atoiGroup(m, "day")
	if err != nil {
		return nil, err
	}
	if ok {
		d.Day = &day
	}

	if s, ok := m.group("month"); ok {
		month, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			if month, err = parseMonth(s, p); err != nil {
				return nil, err
			}
		}
		d.Month = &month
	}

	year, ok, err := atoiGroup(m, "year")
	if err != nil {
		return nil, err
	}
	if ok {
		if year < 100 {
			year += 2000
		}
		d.Year = &year
	}

	return d, nil
}

func dayOfWeekPatterns(p Provider) []string {
	return fragments(p,
		"day_of_week.next_pattern",
		"day_of_week.after_next_pattern",
		"day_of_week.next_week_pattern")
}

func parseDayOfWeekDate(m match, p Provider) (DateToken, error) {
	d := &DayOfWeekDateToken{}

	if s, ok := m.group("weekday"); ok {
		wd, err := parseWeekday(s, p)
		if err != nil {
			return nil, err
		}
		d.DayOfWeek = &wd
	}

	relation := RelationNext
	switch {
	case m.has("afternext"):
		relation = RelationAfterNext
	case m.has("nextweek"):
		relation = RelationNextWeek
	}
	d.Relation = &relation

	return d, nil
}

// namedPatterns wraps each "<section>.<name>_pattern" resource in a group
// called name, so the parser can tell which alternative matched.
func namedPatterns(p Provider, section string, names []string) []string {
	var out []string
	for _, name := range names {
		if s := p.Resource(section + "." + name + "_pattern"); strings.TrimSpace(s) != "" {
			out = append(out, "(?P<"+name+">"+s+")")
		}
	}
	return out
}

func relativeDatePatterns(p Provider) []string {
	names := make([]string, len(relativeDates))
	for i, d := range relativeDates {
		names[i] = d.name
	}
	return namedPatterns(p, "relative_date", names)
}

func parseRelativeDate(m match, _ Provider) (DateToken, error) {
	for i, d := range relativeDates {
		if m.has(d.name) {
			return &RelativeDateToken{RelativeDate: RelativeDate(i)}, nil
		}
	}
	return nil, fmt.Errorf("%w: no relative date matched", ErrFormat)
}

func specialDatePatterns(p Provider) []string {
	names := make([]string, len(specialDates))
	for i, d := range specialDates {
		names[i] = d.name
	}
	return namedPatterns(p, "special_date", names)
}

func parseSpecialDate(m match, _ Provider) (DateToken, error) {
	for i, d := range specialDates {
		if m.has(d.name) {
			return &SpecialDateToken{SpecialDate: SpecialDate(i)}, nil
		}
	}
	return nil, fmt.Errorf("%w: no special date matched", ErrFormat)
}

func normalTimePatterns(p Provider) []string {
	return fragments(p,
		"normal_time.military_pattern",
		"normal_time.with_separators_pattern",
		"normal_time.without_separators_pattern")
}

// parseNormalTime stores the hour on a 12-hour clock. Military times, and
// any bare hour when the provider prefers the 24-hour clock, are read as
// 24-hour values; otherwise hours up to 12 keep an undefined period.
func parseNormalTime(m match, p Provider) (TimeToken, error) {
	t := &NormalTimeToken{}

	var err error
	if t.Hour, _, err = atoiGroup(m, "hour"); err != nil {
		return nil, err
	}
	if t.Minute, _, err = atoiGroup(m, "minute"); err != nil {
		return nil, err
	}
	if t.Second, _, err = atoiGroup(m, "second"); err != nil {
		return nil, err
	}

	switch {
	case m.has("am"):
		t.Period = PeriodAm
	case m.has("pm"):
		t.Period = PeriodPm
	case m.has("military") || p.Prefer24Hour():
		switch {
		case t.Hour == 0:
			t.Hour, t.Period = 12, PeriodAm
		case t.Hour < 12:
			t.Period = PeriodAm
		case t.Hour == 12:
			t.Period = PeriodPm
		default:
			t.Hour, t.Period = t.Hour-12, PeriodPm
		}
	default:
		switch {
		case t.Hour == 0:
			t.Hour, t.Period = 12, PeriodAm
		case t.Hour <= 12:
			t.Period = PeriodUndefined
		default:
			t.Hour, t.Period = t.Hour-12, PeriodPm
		}
	}

	return t, nil
}

func specialTimePatterns(p Provider) []string {
	names := make([]string, len(specialTimes))
	for i, s := range specialTimes {
		names[i] = s.name
	}
	return namedPatterns(p, "special_time", names)
}

func parseSpecialTime(m match, _ Provider) (TimeToken, error) {
	for i, s := range specialTimes {
		if m.has(s.name) {
			return &SpecialTimeToken{SpecialTime: SpecialTime(i)}, nil
		}
	}
	return nil, fmt.Errorf("%w: no special time matched", ErrFormat)
}

func compatible(d dateParser, t timeParser) bool {
	return d.refuses != t.name && t.refuses != d.name
}

// Candidate is one composite date/time pattern, in the order it is tried.
type Candidate struct {
	DateParser string
	TimeParser string
	Pattern    string

	date dateParser
	time timeParser
	re   *regexp.Regexp
}

// parse builds a token from input, reporting false when the pattern does not
// match.
func (c Candidate) parse(input string, p Provider) (*DateTimeToken, bool, error) {
	m, ok := matchString(c.re, input)
	if !ok {
		return nil, false, nil
	}
	d, err := c.date.parse(m, p)
	if err != nil {
		return nil, true, err
	}
	t, err := c.time.parse(m, p)
	if err != nil {
		return nil, true, err
	}
	return &DateTimeToken{Date: d, Time: t}, true, nil
}

// Candidates lists the composite date/time patterns for p in trial order:
// date-only patterns, then time-only patterns, then every date and time
// combination. Patterns that fail to compile are left out.
func Candidates(p Provider) ([]Candidate, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrArgument)
	}
	return buildCandidates(p, func(string, error) {}), nil
}

func buildCandidates(p Provider, warn func(pattern string, err error)) []Candidate {
	emptyDate, emptyTime := dateParsers[0], timeParsers[0]

	type pair struct {
		date dateParser
		time timeParser
	}
	var pairs []pair
	for _, d := range dateParsers {
		pairs = append(pairs, pair{d, emptyTime})
	}
	for _, t := range timeParsers {
		pairs = append(pairs, pair{emptyDate, t})
	}
	for _, d := range dateParsers {
		for _, t := range timeParsers {
			pairs = append(pairs, pair{d, t})
		}
	}

	var out []Candidate
	seen := make(map[string]bool)
	add := func(pr pair, pattern string) {
		key := pr.date.name + "|" + pr.time.name + "|" + pattern
		if seen[key] {
			return
		}
		seen[key] = true

		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			warn(pattern, err)
			return
		}
		out = append(out, Candidate{
			DateParser: pr.date.name,
			TimeParser: pr.time.name,
			Pattern:    pattern,
			date:       pr.date,
			time:       pr.time,
			re:         re,
		})
	}

	for _, pr := range pairs {
		if !compatible(pr.date, pr.time) {
			continue
		}
		dateFrags := pr.date.patterns(p)
		timeFrags := pr.time.patterns(p)
		for _, df := range dateFrags {
			for _, tf := range timeFrags {
				if pattern, ok := dateTimePattern(p, df, tf); ok {
					add(pr, pattern)
				}
				if pattern, ok := timeDatePattern(p, tf, df); ok {
					add(pr, pattern)
				}
			}
		}
	}
	return out
}

func dateTimePattern(p Provider, dateFrag, timeFrag string) (string, bool) {
	switch {
	case blank(dateFrag) && blank(timeFrag):
		return "", false
	case blank(timeFrag):
		return formatResource(p.Resource("date_time.date_only_pattern"), dateFrag), true
	case blank(dateFrag):
		return formatResource(p.Resource("date_time.time_only_pattern"), timeFrag), true
	default:
		return formatResource(p.Resource("date_time.date_time_pattern"), dateFrag, timeFrag), true
	}
}

func timeDatePattern(p Provider, timeFrag, dateFrag string) (string, bool) {
	switch {
	case blank(dateFrag) && blank(timeFrag):
		return "", false
	case blank(dateFrag):
		return formatResource(p.Resource("date_time.time_only_pattern"), timeFrag), true
	case blank(timeFrag):
		return formatResource(p.Resource("date_time.date_only_pattern"), dateFrag), true
	default:
		return formatResource(p.Resource("date_time.time_date_pattern"), timeFrag, dateFrag), true
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
