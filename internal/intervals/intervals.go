// Package intervals implements the half-open range algebra the spatial
// validation rules are built on. Every operation works against the
// interfaces.Interval capability, so resource descriptors and allocation
// descriptors share one implementation.
package intervals

import (
	"sort"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/interfaces"
)

// Range is a concrete half-open interval [start, end), produced by Merge.
type Range struct {
	start uint64
	end   uint64
}

// NewRange builds a Range from its bounds.
func NewRange(start, end uint64) Range {
	return Range{start: start, end: end}
}

func (r Range) Start() uint64 { return r.start }
func (r Range) End() uint64   { return r.end }

var _ interfaces.Interval = Range{}

// Overlaps reports whether a and b intersect with non-zero measure.
// Ranges that merely touch do not overlap.
func Overlaps(a, b interfaces.Interval) bool {
	return a.Start() < b.End() && b.Start() < a.End()
}

// Contains reports whether outer fully covers inner.
func Contains(outer, inner interfaces.Interval) bool {
	return outer.Start() <= inner.Start() && outer.End() >= inner.End()
}

// Length returns the measure of the range.
func Length(iv interfaces.Interval) uint64 {
	return iv.End() - iv.Start()
}

// Merge collapses the input into the minimal sorted list of maximal ranges.
// Inputs that overlap or touch fold into a single output range, so every
// input interval ends up contained in exactly one output and no two outputs
// overlap or touch. The input slice is left unmodified.
func Merge(ivs []interfaces.Interval) []Range {
	if len(ivs) == 0 {
		return nil
	}

	sorted := make([]interfaces.Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start() != sorted[j].Start() {
			return sorted[i].Start() < sorted[j].Start()
		}
		return sorted[i].End() < sorted[j].End()
	})

	merged := []Range{NewRange(sorted[0].Start(), sorted[0].End())}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start() <= last.end {
			if iv.End() > last.end {
				last.end = iv.End()
			}
			continue
		}
		merged = append(merged, NewRange(iv.Start(), iv.End()))
	}
	return merged
}
