package patterns

import (
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
)

// DefaultMatchTimeout bounds a single match so a pathological user pattern
// cannot stall the caller
const DefaultMatchTimeout = 100 * time.Millisecond

// Result is a resolved pattern: either a compiled matcher or the substring
// fallback for a source that failed to compile
type Result struct {
	source string
	re     *regexp2.Regexp
}

// Source returns the raw pattern source
func (r Result) Source() string { return r.source }

// IsFallback reports whether the source failed to compile
func (r Result) IsFallback() bool { return r.re == nil }

// Match tests subject against the compiled pattern, or checks that subject
// contains the raw source when the pattern is a fallback. A match error
// (timeout) counts as no match.
func (r Result) Match(subject string) bool {
	if r.re == nil {
		return strings.Contains(subject, r.source)
	}
	ok, err := r.re.MatchString(subject)
	if err != nil {
		return false
	}
	return ok
}

// CompileFunc compiles a pattern source
type CompileFunc func(source string) (*regexp2.Regexp, error)

// Option configures a Cache
type Option func(*Cache)

// WithMatchTimeout overrides DefaultMatchTimeout
func WithMatchTimeout(d time.Duration) Option {
	return func(c *Cache) { c.timeout = d }
}

// WithCompileFunc replaces the compiler, mostly for instrumentation in tests
func WithCompileFunc(fn CompileFunc) Option {
	return func(c *Cache) { c.compile = fn }
}

// Cache memoizes compiled patterns by source string
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]Result
	compiles int
	timeout  time.Duration
	compile  CompileFunc
	logger   zerolog.Logger
}

// New creates an empty pattern cache
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]Result),
		timeout: DefaultMatchTimeout,
		logger:  logging.GetLogger("patterns.cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.compile == nil {
		c.compile = Compile
	}
	return c
}

// Compile compiles source with ECMAScript semantics
func Compile(source string) (*regexp2.Regexp, error) {
	return regexp2.Compile(source, regexp2.ECMAScript)
}

// Resolve returns the cached result for source, compiling it on first use
func (c *Cache) Resolve(source string) Result {
	c.mu.RLock()
	res, ok := c.entries[source]
	c.mu.RUnlock()
	if ok {
		return res
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have won the race between the two locks
	if res, ok := c.entries[source]; ok {
		return res
	}

	c.compiles++
	res = Result{source: source}
	re, err := c.compile(source)
	if err != nil {
		c.logger.Debug().
			Str("pattern", source).
			Err(err).
			Msg("Pattern does not compile, falling back to substring matching")
	} else {
		re.MatchTimeout = c.timeout
		res.re = re
	}
	c.entries[source] = res
	return res
}

// CompileCount returns how many times a source has been compiled
func (c *Cache) CompileCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.compiles
}

// Len returns the number of cached sources
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
