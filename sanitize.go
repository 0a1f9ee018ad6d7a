package formstate

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans a raw field value before it is stored.
type Sanitizer interface {
	Sanitize(value string) string
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(string) string

// Sanitize implements Sanitizer.
func (fn SanitizerFunc) Sanitize(value string) string {
	if fn == nil {
		return value
	}
	return fn(value)
}

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

func strictSanitizerPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// maxSanitizePasses bounds how many entity layers StrictSanitizer decodes.
const maxSanitizePasses = 8

// StrictSanitizer strips every HTML element from values and trims
// surrounding whitespace. Plain text such as "a & b" survives unchanged.
// Entity-encoded markup is decoded and stripped again until the value is
// stable, so "&lt;b&gt;" can never come back as a live tag.
func StrictSanitizer() Sanitizer {
	return SanitizerFunc(func(value string) string {
		policy := strictSanitizerPolicy()
		current := value
		for pass := 0; pass < maxSanitizePasses; pass++ {
			escaped := policy.Sanitize(current)
			decoded := html.UnescapeString(escaped)
			if decoded == current {
				return strings.TrimSpace(decoded)
			}
			current = decoded
		}
		return strings.TrimSpace(policy.Sanitize(current))
	})
}
