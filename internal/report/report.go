// Package report collects validation findings grouped by violation kind and
// renders them for humans and machines.
package report

import (
	"sort"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/interfaces"
)

// Report groups violations by kind name. Rendering order is the
// lexicographic order of kind names, so output is deterministic across runs
// regardless of insertion order.
type Report struct {
	groups map[string][]interfaces.Violation
}

// New returns an empty report.
func New() *Report {
	return &Report{groups: make(map[string][]interfaces.Violation)}
}

// Add appends one violation under its kind.
func (r *Report) Add(v interfaces.Violation) {
	r.groups[v.Kind()] = append(r.groups[v.Kind()], v)
}

// Merge appends every group of other into r. Groups sharing a kind are
// concatenated, not replaced.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for kind, violations := range other.groups {
		r.groups[kind] = append(r.groups[kind], violations...)
	}
}

// Count returns the total number of violations across all kinds.
func (r *Report) Count() int {
	n := 0
	for _, violations := range r.groups {
		n += len(violations)
	}
	return n
}

// Kinds returns the kind names present, sorted.
func (r *Report) Kinds() []string {
	kinds := make([]string, 0, len(r.groups))
	for kind := range r.groups {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// ViolationsFor returns the violations recorded under kind, in insertion
// order.
func (r *Report) ViolationsFor(kind string) []interfaces.Violation {
	return r.groups[kind]
}
