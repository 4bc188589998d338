package parsing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	defaultCacheSize = 16
	defaultCacheTTL  = 30 * time.Minute
)

// compiled holds every regular expression a culture needs.
type compiled struct {
	marker     *regexp.Regexp
	candidates []Candidate
	spans      []*regexp.Regexp
}

// Parser turns free-form timer input into tokens. A Parser is safe for
// concurrent use; compiled patterns are shared across calls per culture.
type Parser struct {
	logger *zap.Logger
	cache  *expirable.LRU[string, *compiled]
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger rejected candidates are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCache bounds the compiled pattern cache to size cultures, each kept
// for ttl.
func WithCache(size int, ttl time.Duration) Option {
	return func(p *Parser) {
		p.cache = expirable.NewLRU[string, *compiled](size, nil, ttl)
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.cache == nil {
		p.cache = expirable.NewLRU[string, *compiled](defaultCacheSize, nil, defaultCacheTTL)
	}
	return p
}

var defaultParser = NewParser()

// Parse reads input with the default parser.
func Parse(input string, p Provider) (*TimerStartToken, error) {
	return defaultParser.Parse(input, p)
}

// TryParse reads input with the default parser.
func TryParse(input string, p Provider) (*TimerStartToken, bool) {
	return defaultParser.TryParse(input, p)
}

// Parse reads input as a timer start. An input led by the culture's
// date/time marker ("at 5:00", "until friday") is only read as a date/time;
// anything else is read as a duration first and as a date/time second.
func (ps *Parser) Parse(input string, p Provider) (*TimerStartToken, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrArgument)
	}
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}

	c := ps.compile(p)

	var token *TimerStartToken
	var err error
	if c.marker != nil && c.marker.MatchString(s) {
		token, err = ps.parseDateTime(c, c.marker.ReplaceAllString(s, ""), p)
	} else if token, err = ps.parseTimeSpan(c, s, p); err != nil {
		token, err = ps.parseDateTime(c, s, p)
	}
	if err != nil {
		return nil, err
	}

	token.OriginalInput = input
	return token, nil
}

// TryParse is Parse for callers that only need to know whether it worked.
func (ps *Parser) TryParse(input string, p Provider) (*TimerStartToken, bool) {
	token, err := ps.Parse(input, p)
	if err != nil {
		return nil, false
	}
	return token, true
}

// ParseDateTime reads input only as a date and/or time.
func (ps *Parser) ParseDateTime(input string, p Provider) (*TimerStartToken, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrArgument)
	}
	token, err := ps.parseDateTime(ps.compile(p), strings.TrimSpace(input), p)
	if err != nil {
		return nil, err
	}
	token.OriginalInput = input
	return token, nil
}

// ParseTimeSpan reads input only as a duration.
func (ps *Parser) ParseTimeSpan(input string, p Provider) (*TimerStartToken, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrArgument)
	}
	token, err := ps.parseTimeSpan(ps.compile(p), strings.TrimSpace(input), p)
	if err != nil {
		return nil, err
	}
	token.OriginalInput = input
	return token, nil
}

func (ps *Parser) parseDateTime(c *compiled, s string, p Provider) (*TimerStartToken, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}

	for i, cand := range c.candidates {
		dt, matched, err := cand.parse(s, p)
		if !matched {
			continue
		}
		if err != nil {
			ps.logger.Debug("candidate rejected",
				zap.Int("index", i),
				zap.String("date_parser", cand.DateParser),
				zap.String("time_parser", cand.TimeParser),
				zap.Error(err))
			continue
		}
		if !dt.Valid() {
			ps.logger.Debug("candidate produced invalid token",
				zap.Int("index", i),
				zap.String("date_parser", cand.DateParser),
				zap.String("time_parser", cand.TimeParser))
			continue
		}

		ps.logger.Debug("candidate matched",
			zap.Int("index", i),
			zap.String("date_parser", cand.DateParser),
			zap.String("time_parser", cand.TimeParser),
			zap.String("input", s))
		return &TimerStartToken{DateTime: dt}, nil
	}
	return nil, fmt.Errorf("%w: %q is not a date or time", ErrFormat, s)
}

func (ps *Parser) parseTimeSpan(c *compiled, s string, p Provider) (*TimerStartToken, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}

	for i, re := range c.spans {
		m, ok := matchString(re, s)
		if !ok {
			continue
		}
		span, err := parseTimeSpan(m, p)
		if err != nil {
			ps.logger.Debug("time span pattern rejected", zap.Int("index", i), zap.Error(err))
			continue
		}
		if !span.Valid() {
			continue
		}
		return &TimerStartToken{TimeSpan: span}, nil
	}
	return nil, fmt.Errorf("%w: %q is not a duration", ErrFormat, s)
}

// cacheKey identifies the compiled patterns for p: its name, its date
// ordering and a digest of every pattern resource it supplies, so providers
// that share a name but not a grammar do not share patterns.
func cacheKey(p Provider) string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	for _, d := range dateParsers {
		for _, s := range d.patterns(p) {
			write(s)
		}
	}
	for _, t := range timeParsers {
		for _, s := range t.patterns(p) {
			write(s)
		}
	}
	for _, s := range timeSpanPatterns(p) {
		write(s)
	}
	for _, k := range []string{
		"date_time.date_only_pattern",
		"date_time.time_only_pattern",
		"date_time.date_time_pattern",
		"date_time.time_date_pattern",
		"timer_start.use_date_time_pattern",
	} {
		write(p.Resource(k))
	}

	return p.Name() + "|" + strconv.FormatBool(p.IsMonthFirst()) + "|" + strconv.FormatBool(p.IsYearFirst()) +
		"|" + hex.EncodeToString(h.Sum(nil)[:8])
}

// compile returns the cached patterns for p's culture, building them on a
// miss. Concurrent misses may both compile; the results are identical.
func (ps *Parser) compile(p Provider) *compiled {
	key := cacheKey(p)
	if c, ok := ps.cache.Get(key); ok {
		return c
	}

	warn := func(pattern string, err error) {
		ps.logger.Warn("skipping pattern that does not compile",
			zap.String("locale", p.Name()),
			zap.String("pattern", pattern),
			zap.Error(err))
	}

	c := &compiled{
		candidates: buildCandidates(p, warn),
		spans:      compileTimeSpanPatterns(p, warn),
	}
	if marker := p.Resource("timer_start.use_date_time_pattern"); strings.TrimSpace(marker) != "" {
		re, err := regexp.Compile("(?i)" + marker)
		if err != nil {
			warn(marker, err)
		} else {
			c.marker = re
		}
	}

	ps.cache.Add(key, c)
	ps.logger.Debug("compiled patterns",
		zap.String("locale", p.Name()),
		zap.Int("candidates", len(c.candidates)),
		zap.Int("spans", len(c.spans)))
	return c
}
