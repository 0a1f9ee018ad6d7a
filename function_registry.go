package formstate

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Function is a custom callable exposed to expression rules.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom functions. Lookups ignore case; engines see
// the name as registered.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]namedFunction
}

type namedFunction struct {
	name string
	fn   Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]namedFunction),
	}
}

// DefaultFunctions returns a registry preloaded with form helpers:
// luhn(value) checks card style checksums, digits(value) strips non digits.
func DefaultFunctions() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("luhn", luhnFunction)
	_ = registry.Register("digits", digitsFunction)
	return registry
}

// Register stores fn under name, rejecting duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("formstate: function %q is nil", name)
	}
	name = strings.TrimSpace(name)
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("formstate: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]namedFunction)
	}
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("formstate: function %q already registered", name)
	}
	r.functions[key] = namedFunction{name: name, fn: fn}
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]namedFunction, len(r.functions)),
	}
	for key, entry := range r.functions {
		clone.functions[key] = entry
	}
	return clone
}

// merge copies every function from other, replacing entries with the same name.
func (r *FunctionRegistry) merge(other *FunctionRegistry) {
	if other == nil || other == r {
		return
	}
	other.mu.RLock()
	entries := make(map[string]namedFunction, len(other.functions))
	for key, entry := range other.functions {
		entries[key] = entry
	}
	other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]namedFunction, len(entries))
	}
	for key, entry := range entries {
		r.functions[key] = entry
	}
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("formstate: function registry is nil")
	}
	r.mu.RLock()
	entry, ok := r.functions[normalizeName(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("formstate: function %q not registered", name)
	}
	return entry.fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for _, entry := range r.functions {
		names = append(names, entry.name)
	}
	sort.Strings(names)
	return names
}

func stringArg(name string, args []any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("formstate: %s expects 1 argument, got %d", name, len(args))
	}
	value, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("formstate: %s expects a string, got %T", name, args[0])
	}
	return value, nil
}

func digitsFunction(args ...any) (any, error) {
	value, err := stringArg("digits", args)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func luhnFunction(args ...any) (any, error) {
	value, err := stringArg("luhn", args)
	if err != nil {
		return nil, err
	}
	sum, count := 0, 0
	double := false
	for i := len(value) - 1; i >= 0; i-- {
		c := value[i]
		if c == ' ' || c == '-' {
			continue
		}
		if c < '0' || c > '9' {
			return false, nil
		}
		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
		count++
	}
	return count > 1 && sum%10 == 0, nil
}
