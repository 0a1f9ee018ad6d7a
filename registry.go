package formstate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// Matcher tests a field value. *regexp.Regexp satisfies it directly.
type Matcher interface {
	MatchString(value string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(value string) bool

// MatchString implements Matcher.
func (f MatcherFunc) MatchString(value string) bool {
	if f == nil {
		return false
	}
	return f(value)
}

// isNilMatcher reports nil matchers, including typed nil pointers such as a
// nil *regexp.Regexp stored in the interface.
func isNilMatcher(m Matcher) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// PatternTimeout bounds a single ECMAScript pattern match.
const PatternTimeout = 250 * time.Millisecond

// ecmaMatcher runs browser-flavoured patterns, lookaheads included.
type ecmaMatcher struct {
	re *regexp2.Regexp
}

// CompilePattern compiles an ECMAScript regular expression into a Matcher.
func CompilePattern(pattern string) (Matcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("formstate: compile pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = PatternTimeout
	return ecmaMatcher{re: re}, nil
}

func (m ecmaMatcher) MatchString(value string) bool {
	ok, err := m.re.MatchString(value)
	if err != nil {
		return false
	}
	return ok
}

func (m ecmaMatcher) String() string {
	return m.re.String()
}

// Registry maps pattern names (case-insensitive) to matchers.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Matcher
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Matcher)}
}

// Register compiles pattern and stores it under name, replacing any previous entry.
func (r *Registry) Register(name, pattern string) error {
	matcher, err := CompilePattern(pattern)
	if err != nil {
		return err
	}
	return r.RegisterMatcher(name, matcher)
}

// RegisterMatcher stores matcher under name, replacing any previous entry.
func (r *Registry) RegisterMatcher(name string, matcher Matcher) error {
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("formstate: pattern name must not be empty")
	}
	if isNilMatcher(matcher) {
		return fmt.Errorf("formstate: pattern %q has no matcher", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Matcher)
	}
	r.entries[key] = matcher
	return nil
}

// Lookup returns the matcher registered for name.
func (r *Registry) Lookup(name string) (Matcher, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	matcher, ok := r.entries[normalizeName(name)]
	return matcher, ok
}

// Names returns registered names sorted alphabetically.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy safe to extend independently.
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	if r == nil {
		return clone
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, matcher := range r.entries {
		clone.entries[name] = matcher
	}
	return clone
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var defaultPatterns = map[string]string{
	"email":        `^[^\s@]+@[^\s@]+\.[^\s@]+$`,
	"url":          `^(https?:\/\/)?([\w-]+\.)+[\w-]+(:\d+)?(\/[^\s]*)?$`,
	"numeric":      `^\d+$`,
	"integer":      `^[-+]?\d+$`,
	"decimal":      `^[-+]?(\d+\.?\d*|\.\d+)$`,
	"alpha":        `^[A-Za-z]+$`,
	"alphanumeric": `^[A-Za-z0-9]+$`,
	"phone":        `^\+?[1-9]\d{1,14}$`,
	"password":     `^(?=.*[a-z])(?=.*[A-Z])(?=.*\d).{8,}$`,
	"zip":          `^\d{5}(-\d{4})?$`,
	"hexcolor":     `^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`,
	"slug":         `^[a-z0-9]+(?:-[a-z0-9]+)*$`,
	"username":     `^[A-Za-z0-9_]{3,16}$`,
	"date":         `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`,
	"time":         `^([01]\d|2[0-3]):[0-5]\d$`,
	"ipv4":         `^((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\.){3}(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)$`,
	"creditcard":   `^(?:\d[ -]?){12,18}\d$`,
}

var defaultRegistry = mustDefaultRegistry()

func mustDefaultRegistry() *Registry {
	r := NewRegistry()
	for name, pattern := range defaultPatterns {
		if err := r.Register(name, pattern); err != nil {
			panic(err)
		}
	}
	return r
}

// DefaultRegistry returns a copy of the built-in pattern table.
func DefaultRegistry() *Registry {
	return defaultRegistry.Clone()
}
