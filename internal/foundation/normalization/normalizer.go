package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Func maps a raw user string onto a lookup key.
type Func func(string) string

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	name         string
	clean        Func
	validValues  map[string]T
	defaultValue T
	validKeys    []string
}

// NewNormalizer creates a normalizer keyed on lower-cased, trimmed strings.
// name is used in error messages ("invalid output format ...").
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	return WithCustomNormalizer(name, values, defaultValue, Lower)
}

// WithCustomNormalizer creates a normalizer with custom key normalization.
func WithCustomNormalizer[T comparable](name string, values map[string]T, defaultValue T, clean Func) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		clean:        clean,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts raw to the enum value, falling back to the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.validValues[n.clean(raw)]; ok {
		return value
	}
	return n.defaultValue
}

// Parse converts raw to the enum value. Empty input yields the default;
// anything else unknown is an error.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	cleaned := n.clean(raw)
	if cleaned == "" {
		return n.defaultValue, nil
	}
	if value, ok := n.validValues[cleaned]; ok {
		return value, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", n.name, raw, strings.Join(n.validKeys, ", "))
}

// ValidKeys returns all valid normalized keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.validKeys))
	copy(out, n.validKeys)
	return out
}

// Lower trims and lower-cases s.
func Lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Kebab lower-cases s and joins words with hyphens, so "Scenario_Based" and
// "scenario based" both become "scenario-based".
func Kebab(s string) string {
	fields := strings.FieldsFunc(Lower(s), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	return strings.Join(fields, "-")
}
