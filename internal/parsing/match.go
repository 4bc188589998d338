package parsing

import "regexp"

// match is a successful regular expression match against an input string.
type match struct {
	names []string
	input string
	loc   []int
}

func matchString(re *regexp.Regexp, s string) (match, bool) {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return match{}, false
	}
	return match{names: re.SubexpNames(), input: s, loc: loc}, true
}

// group returns the text captured by the named group. A name may be declared
// more than once in a pattern; the first participating group wins.
func (m match) group(name string) (string, bool) {
	for i, n := range m.names {
		if n != name || 2*i+1 >= len(m.loc) {
			continue
		}
		if start := m.loc[2*i]; start >= 0 {
			return m.input[start:m.loc[2*i+1]], true
		}
	}
	return "", false
}

func (m match) has(name string) bool {
	_, ok := m.group(name)
	return ok
}
