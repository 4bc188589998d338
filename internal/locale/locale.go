// Package locale provides the culture-sensitive resources the timer-start
// parser reads its grammar and display strings from.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.toml data/cultures.yaml
var dataFS embed.FS

// ErrUnknownLocale is returned when a culture name is not in the registry.
var ErrUnknownLocale = errors.New("unknown locale")

var (
	monthFirstPattern = regexp.MustCompile(`^.*M.*d.*y.*$`)
	yearFirstPattern  = regexp.MustCompile(`^.*y.*M.*d.*$`)
)

// Locale is a culture: a short date pattern plus a resource table.
// A Locale is immutable and safe for concurrent use.
type Locale struct {
	name             string
	language         string
	shortDatePattern string
	prefer24Hour     bool
	resources        map[string]string
	fallback         map[string]string
}

// New creates a Locale from an explicit resource table. Missing keys resolve
// to the empty string.
func New(name, shortDatePattern string, resources map[string]string) *Locale {
	table := make(map[string]string, len(resources))
	for k, v := range resources {
		table[k] = v
	}
	return &Locale{
		name:             name,
		shortDatePattern: shortDatePattern,
		resources:        table,
	}
}

// Name returns the culture name, e.g. "en-GB".
func (l *Locale) Name() string { return l.name }

// Language returns the resource language, e.g. "en".
func (l *Locale) Language() string { return l.language }

// ShortDatePattern returns the culture's numeric date layout, e.g. "dd/MM/yyyy".
func (l *Locale) ShortDatePattern() string { return l.shortDatePattern }

// Resource looks up a resource by its dotted key, falling back to the
// default language. It returns "" when the key is unknown.
func (l *Locale) Resource(key string) string {
	if v, ok := l.resources[key]; ok {
		return v
	}
	if v, ok := l.fallback[key]; ok {
		return v
	}
	return ""
}

// IsMonthFirst reports whether numeric dates put the month before the day.
func (l *Locale) IsMonthFirst() bool {
	return monthFirstPattern.MatchString(l.shortDatePattern)
}

// IsYearFirst reports whether numeric dates lead with the year.
func (l *Locale) IsYearFirst() bool {
	return yearFirstPattern.MatchString(l.shortDatePattern)
}

// Prefer24Hour reports whether bare hours are read and shown on a 24-hour clock.
func (l *Locale) Prefer24Hour() bool { return l.prefer24Hour }

// WithPrefer24Hour returns a copy of l with the 24-hour preference set.
func (l *Locale) WithPrefer24Hour(prefer bool) *Locale {
	c := *l
	c.prefer24Hour = prefer
	return &c
}

type culture struct {
	Name             string `yaml:"name"`
	Language         string `yaml:"language"`
	ShortDatePattern string `yaml:"short_date_pattern"`
	Prefer24Hour     bool   `yaml:"prefer_24_hour"`
}

type catalog struct {
	Default  string    `yaml:"default"`
	Cultures []culture `yaml:"cultures"`
}

type registry struct {
	defaultName string
	defaultLang string
	cultures    map[string]culture
	names       []string
	languages   map[string]map[string]string
}

var (
	loadOnce sync.Once
	loaded   *registry
	loadErr  error
)

func load() (*registry, error) {
	loadOnce.Do(func() {
		loaded, loadErr = readRegistry(dataFS, "data")
	})
	return loaded, loadErr
}

func readRegistry(fsys embed.FS, dir string) (*registry, error) {
	data, err := fsys.ReadFile(path.Join(dir, "cultures.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to read culture catalog: %w", err)
	}

	var cat catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse culture catalog: %w", err)
	}

	reg := &registry{
		defaultName: cat.Default,
		cultures:    make(map[string]culture, len(cat.Cultures)),
		languages:   make(map[string]map[string]string),
	}

	for _, c := range cat.Cultures {
		key := normalizeName(c.Name)
		if _, dup := reg.cultures[key]; dup {
			return nil, fmt.Errorf("duplicate culture %q", c.Name)
		}
		reg.cultures[key] = c
		reg.names = append(reg.names, c.Name)

		if _, ok := reg.languages[c.Language]; ok {
			continue
		}
		table, err := readLanguage(fsys, dir, c.Language)
		if err != nil {
			return nil, err
		}
		reg.languages[c.Language] = table
	}

	def, ok := reg.cultures[normalizeName(cat.Default)]
	if !ok {
		return nil, fmt.Errorf("default culture %q not found", cat.Default)
	}
	reg.defaultLang = def.Language

	sort.Strings(reg.names)
	return reg, nil
}

func readLanguage(fsys embed.FS, dir, language string) (map[string]string, error) {
	file := path.Join(dir, language+".toml")
	data, err := fsys.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("no resource file for language '%s': %w", language, err)
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML file %s: %w", file, err)
	}

	table := make(map[string]string)
	flatten("", raw, table)
	return table, nil
}

// flatten turns nested tables into dotted keys; non-string leaves are dropped.
func flatten(prefix string, in map[string]interface{}, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]interface{}:
			flatten(key, val, out)
		}
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
}

// Lookup returns the registered culture with the given name. Names are
// matched case-insensitively and "en_GB" is accepted for "en-GB".
func Lookup(name string) (*Locale, error) {
	reg, err := load()
	if err != nil {
		return nil, err
	}

	c, ok := reg.cultures[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, name)
	}

	l := &Locale{
		name:             c.Name,
		language:         c.Language,
		shortDatePattern: c.ShortDatePattern,
		prefer24Hour:     c.Prefer24Hour,
		resources:        reg.languages[c.Language],
	}
	if c.Language != reg.defaultLang {
		l.fallback = reg.languages[reg.defaultLang]
	}
	return l, nil
}

// Default returns the default culture. It panics if the embedded catalog is
// broken, which is a build defect.
func Default() *Locale {
	reg, err := load()
	if err != nil {
		panic(err)
	}
	l, err := Lookup(reg.defaultName)
	if err != nil {
		panic(err)
	}
	return l
}

// Names lists the registered culture names in sorted order.
func Names() []string {
	reg, err := load()
	if err != nil {
		return nil
	}
	names := make([]string, len(reg.names))
	copy(names, reg.names)
	return names
}
