package normalisers

import (
	"sort"
	"strings"
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry implements NormaliserRegistry with priority-based application.
// When multiple normalisers match a field, they run in priority order
// (highest first), each receiving the previous one's output.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a new normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make([]driven.Normaliser, 0),
	}
}

// DefaultRegistry creates a registry with the standard lead normalisers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewWhitespaceNormaliser())
	r.Register(NewPhoneNormaliser())
	r.Register(NewEmailNormaliser())
	return r
}

// Register registers a normaliser.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
}

// Apply runs every normaliser matching the field over the value.
// Fields with no matching normaliser pass through unchanged.
func (r *Registry) Apply(field, value string) string {
	for _, n := range r.matching(field) {
		value = n.Normalise(value)
	}
	return value
}

// matching retrieves all normalisers for a field, sorted by priority
// (highest first).
func (r *Registry) matching(field string) []driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []driven.Normaliser
	for _, n := range r.normalisers {
		if matchesField(n.Fields(), field) {
			matches = append(matches, n)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})

	return matches
}

// List returns all registered field names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fieldSet := make(map[string]struct{})
	for _, n := range r.normalisers {
		for _, f := range n.Fields() {
			fieldSet[f] = struct{}{}
		}
	}

	fields := make([]string, 0, len(fieldSet))
	for f := range fieldSet {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// matchesField checks if any of the declared fields match the given field.
// "*" matches every field.
func matchesField(declared []string, field string) bool {
	field = strings.ToLower(strings.TrimSpace(field))

	for _, d := range declared {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == field || d == "*" {
			return true
		}
	}
	return false
}
