// Package hob validates a captured hand-off block list against the DXE
// core's memory descriptor requirements.
package hob

import (
	"errors"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/interfaces"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/intervals"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/report"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
)

// ErrEmptyList reports a capture with no HOB records. The rules assume a
// populated snapshot, so this aborts validation instead of counting as a
// violation.
var ErrEmptyList = errors.New("hob list is empty")

// Validator runs the HOB rule battery over one snapshot's records.
type Validator struct {
	hobs []types.Hob
}

// NewValidator returns a validator over the given HOB list.
func NewValidator(hobs []types.Hob) *Validator {
	return &Validator{hobs: hobs}
}

// Validate runs every HOB rule in a fixed order and returns the merged
// report. Rules never short-circuit; all violations are collected.
func (v *Validator) Validate() (*report.Report, error) {
	if len(v.hobs) == 0 {
		return nil, ErrEmptyList
	}

	rep := report.New()
	rep.Merge(v.checkMemoryOverlap())
	rep.Merge(v.checkV1V2AttributeConsistency())
	rep.Merge(v.checkV1V2Superset())
	rep.Merge(v.checkPageZeroAllocations())
	rep.Merge(v.checkUceAttribute())
	rep.Merge(v.checkCacheabilityAttributes())
	rep.Merge(v.checkIOResourceAttributes())
	return rep, nil
}

func (v *Validator) v1Descriptors() []*types.ResourceDescriptor {
	var out []*types.ResourceDescriptor
	for _, h := range v.hobs {
		if rd, ok := h.(*types.ResourceDescriptorHob); ok {
			out = append(out, &rd.ResourceDescriptor)
		}
	}
	return out
}

func (v *Validator) v2Hobs() []*types.ResourceDescriptorV2Hob {
	var out []*types.ResourceDescriptorV2Hob
	for _, h := range v.hobs {
		if rd, ok := h.(*types.ResourceDescriptorV2Hob); ok {
			out = append(out, rd)
		}
	}
	return out
}

// overlappingPairs returns every pairwise overlap within one bucket of
// descriptors, preserving list order.
func overlappingPairs(descriptors []*types.ResourceDescriptor) [][2]*types.ResourceDescriptor {
	var pairs [][2]*types.ResourceDescriptor
	for i := 0; i < len(descriptors); i++ {
		for j := i + 1; j < len(descriptors); j++ {
			if intervals.Overlaps(descriptors[i], descriptors[j]) {
				pairs = append(pairs, [2]*types.ResourceDescriptor{descriptors[i], descriptors[j]})
			}
		}
	}
	return pairs
}

// checkMemoryOverlap flags overlapping ranges within each of the four
// descriptor buckets (v1/v2 crossed with memory/IO). A v1 range overlapping
// a v2 range is legal here; the consistency and superset rules police that
// relationship.
func (v *Validator) checkMemoryOverlap() *report.Report {
	rep := report.New()

	var v1Memory, v2Memory, v1IO, v2IO []*types.ResourceDescriptor
	for _, h := range v.hobs {
		switch h := h.(type) {
		case *types.ResourceDescriptorHob:
			if types.IsIOResource(h.ResourceType) {
				v1IO = append(v1IO, &h.ResourceDescriptor)
			} else {
				v1Memory = append(v1Memory, &h.ResourceDescriptor)
			}
		case *types.ResourceDescriptorV2Hob:
			if types.IsIOResource(h.V1.ResourceType) {
				v2IO = append(v2IO, &h.V1)
			} else {
				v2Memory = append(v2Memory, &h.V1)
			}
		}
	}

	for _, bucket := range [][]*types.ResourceDescriptor{v1Memory, v2Memory, v1IO, v2IO} {
		for _, pair := range overlappingPairs(bucket) {
			rep.Add(&OverlappingMemoryRanges{Hob1: pair[0], Hob2: pair[1]})
		}
	}
	return rep
}

// checkV1V2AttributeConsistency flags v1/v2 pairs that overlap but disagree
// on resource type, resource attribute, or owner. Overlap gates all three
// comparisons; disjoint pairs are never compared.
func (v *Validator) checkV1V2AttributeConsistency() *report.Report {
	rep := report.New()
	v2Hobs := v.v2Hobs()
	for _, v1 := range v.v1Descriptors() {
		for _, v2 := range v2Hobs {
			if !intervals.Overlaps(v1, &v2.V1) {
				continue
			}
			if v1.ResourceType != v2.V1.ResourceType ||
				v1.ResourceAttribute != v2.V1.ResourceAttribute ||
				v1.Owner != v2.V1.Owner {
				rep.Add(&InconsistentMemoryAttributes{V1: v1, V2: &v2.V1})
			}
		}
	}
	return rep
}

// checkV1V2Superset requires every v1 range to be contained in a single
// merged v2 range. Merging is safe because the consistency rule already
// holds overlapping v1/v2 pairs to identical attributes.
func (v *Validator) checkV1V2Superset() *report.Report {
	rep := report.New()

	v2Hobs := v.v2Hobs()
	v2Ranges := make([]interfaces.Interval, 0, len(v2Hobs))
	for _, h := range v2Hobs {
		v2Ranges = append(v2Ranges, &h.V1)
	}
	mergedV2 := intervals.Merge(v2Ranges)

	for _, v1 := range v.v1Descriptors() {
		migrated := false
		for _, r := range mergedV2 {
			if intervals.Contains(r, v1) {
				migrated = true
				break
			}
		}
		if !migrated {
			rep.Add(&V1MemoryRangeNotContainedInV2{V1: v1})
		}
	}
	return rep
}

// checkPageZeroAllocations flags memory allocations whose base address
// falls inside the first page.
func (v *Validator) checkPageZeroAllocations() *report.Report {
	rep := report.New()
	const pageZeroEnd = types.UefiPageSize - 1
	for _, h := range v.hobs {
		alloc, ok := h.(*types.MemoryAllocationHob)
		if !ok {
			continue
		}
		if alloc.AllocDescriptor.MemoryBaseAddress <= pageZeroEnd {
			rep.Add(&PageZeroMemoryDescribed{Desc: &alloc.AllocDescriptor})
		}
	}
	return rep
}

// checkUceAttribute flags v2 descriptors carrying the deprecated UCE bit,
// regardless of resource type.
func (v *Validator) checkUceAttribute() *report.Report {
	rep := report.New()
	for _, h := range v.v2Hobs() {
		if h.Attributes&types.MemoryUCE != 0 {
			rep.Add(&V2ContainsUceAttribute{V2: &h.V1, Attributes: h.Attributes})
		}
	}
	return rep
}

// checkCacheabilityAttributes requires exactly one cacheability bit on
// memory-typed v2 descriptors. UCE never counts as the valid bit. Zero
// cache bits, two cache bits, or a cache bit that is not the lowest set
// attribute bit all fail the power-of-two test below.
func (v *Validator) checkCacheabilityAttributes() *report.Report {
	rep := report.New()
	const mask = types.CacheAttributeMask &^ types.MemoryUCE
	for _, h := range v.v2Hobs() {
		if types.IsIOResource(h.V1.ResourceType) {
			continue
		}
		cache := h.Attributes & mask
		if cache == 0 || cache&(h.Attributes-1) != 0 {
			rep.Add(&V2MissingValidCacheabilityAttribute{V2: &h.V1, Attributes: h.Attributes})
		}
	}
	return rep
}

// checkIOResourceAttributes requires IO-typed v2 descriptors to carry no
// extended attributes at all.
func (v *Validator) checkIOResourceAttributes() *report.Report {
	rep := report.New()
	for _, h := range v.v2Hobs() {
		if types.IsIOResource(h.V1.ResourceType) && h.Attributes != 0 {
			rep.Add(&V2InvalidIoCacheabilityAttributes{V2: &h.V1, Attributes: h.Attributes})
		}
	}
	return rep
}
