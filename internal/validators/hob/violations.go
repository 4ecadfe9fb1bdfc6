package hob

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/interfaces"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
)

// Violation kind names used as report grouping keys.
const (
	KindInconsistentMemoryAttributes        = "InconsistentMemoryAttributes"
	KindOverlappingMemoryRanges             = "OverlappingMemoryRanges"
	KindPageZeroMemoryDescribed             = "PageZeroMemoryDescribed"
	KindV1MemoryRangeNotContainedInV2       = "V1MemoryRangeNotContainedInV2"
	KindV2ContainsUceAttribute              = "V2ContainsUceAttribute"
	KindV2MissingValidCacheabilityAttribute = "V2MissingValidCacheabilityAttribute"
	KindV2InvalidIoCacheabilityAttributes   = "V2InvalidIoCacheabilityAttributes"
)

const requirementsDoc = "https://github.com/OpenDevicePartnership/patina/blob/main/docs/src/integrate/patina_requirements.md"

var (
	_ interfaces.Violation = (*OverlappingMemoryRanges)(nil)
	_ interfaces.Violation = (*InconsistentMemoryAttributes)(nil)
	_ interfaces.Violation = (*PageZeroMemoryDescribed)(nil)
	_ interfaces.Violation = (*V1MemoryRangeNotContainedInV2)(nil)
	_ interfaces.Violation = (*V2ContainsUceAttribute)(nil)
	_ interfaces.Violation = (*V2MissingValidCacheabilityAttribute)(nil)
	_ interfaces.Violation = (*V2InvalidIoCacheabilityAttributes)(nil)
)

// descriptorCell renders a descriptor as an indented JSON evidence cell.
func descriptorCell(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "descriptor serialization failed"
	}
	return string(data)
}

// OverlappingMemoryRanges reports two same-generation descriptors claiming
// intersecting ranges.
type OverlappingMemoryRanges struct {
	Hob1 *types.ResourceDescriptor
	Hob2 *types.ResourceDescriptor
}

func (v *OverlappingMemoryRanges) Kind() string   { return KindOverlappingMemoryRanges }
func (v *OverlappingMemoryRanges) Header() string { return "HOB: Overlapping Memory Ranges" }
func (v *OverlappingMemoryRanges) Guidance() string {
	return "   Platforms must produce non-overlapping HOBs by splitting up overlapping\n" +
		"   HOBs into multiple HOBs and eliminating duplicates.\n" +
		"   Ref: " + requirementsDoc
}
func (v *OverlappingMemoryRanges) TableHeader() []string {
	return []string{"#", "Hob 1", "Hob 2", "Violation/Resolution"}
}
func (v *OverlappingMemoryRanges) TableRow(row int) []string {
	resolution := fmt.Sprintf(
		"Hob 1 range must not overlap with Hob 2 range\nHob 1 range [%#x, %#x) | Hob 2 range [%#x, %#x)",
		v.Hob1.Start(), v.Hob1.End(), v.Hob2.Start(), v.Hob2.End())
	return []string{strconv.Itoa(row), descriptorCell(v.Hob1), descriptorCell(v.Hob2), resolution}
}

// InconsistentMemoryAttributes reports an overlapping v1/v2 descriptor pair
// whose resource type, resource attribute, or owner disagree.
type InconsistentMemoryAttributes struct {
	V1 *types.ResourceDescriptor
	V2 *types.ResourceDescriptor
}

func (v *InconsistentMemoryAttributes) Kind() string   { return KindInconsistentMemoryAttributes }
func (v *InconsistentMemoryAttributes) Header() string { return "HOB: Inconsistent Memory Attributes" }
func (v *InconsistentMemoryAttributes) Guidance() string {
	return "   Platforms producing V1 and V2 HOBs that describe the same range(s) must\n" +
		"   keep their memory attributes consistent.\n" +
		"   Ref: " + requirementsDoc
}
func (v *InconsistentMemoryAttributes) TableHeader() []string {
	return []string{"#", "V1 Hob", "V2 Hob", "Violation/Resolution"}
}
func (v *InconsistentMemoryAttributes) TableRow(row int) []string {
	var resolution string
	switch {
	case v.V1.Owner != v.V2.Owner:
		resolution = fmt.Sprintf("V1 owner(%s) does not match V2 owner(%s)", v.V1.Owner, v.V2.Owner)
	case v.V1.ResourceAttribute != v.V2.ResourceAttribute:
		resolution = fmt.Sprintf("V1 resource_attribute(%#x) does not match V2 resource_attribute(%#x)",
			v.V1.ResourceAttribute, v.V2.ResourceAttribute)
	case v.V1.ResourceType != v.V2.ResourceType:
		resolution = fmt.Sprintf("V1 resource_type(%d) does not match V2 resource_type(%d)",
			v.V1.ResourceType, v.V2.ResourceType)
	default:
		resolution = "V1 and V2 hobs are inconsistent"
	}
	return []string{strconv.Itoa(row), descriptorCell(v.V1), descriptorCell(v.V2), resolution}
}

// PageZeroMemoryDescribed reports a memory allocation that claims the first
// page of physical address space.
type PageZeroMemoryDescribed struct {
	Desc *types.MemoryAllocationDescriptor
}

func (v *PageZeroMemoryDescribed) Kind() string   { return KindPageZeroMemoryDescribed }
func (v *PageZeroMemoryDescribed) Header() string { return "HOB: Page Zero Memory Described" }
func (v *PageZeroMemoryDescribed) Guidance() string {
	return "   Platforms must not allocate page 0; the DXE core keeps it unmapped to\n" +
		"   catch null pointer dereferences.\n" +
		"   Ref: " + requirementsDoc
}
func (v *PageZeroMemoryDescribed) TableHeader() []string {
	return []string{"#", "Memory Allocation Descriptor", "Violation/Resolution"}
}
func (v *PageZeroMemoryDescribed) TableRow(row int) []string {
	resolution := fmt.Sprintf(
		"memory_base_address and memory_length\nmust not describe page 0\nAllocation range [%#x, %#x)",
		v.Desc.Start(), v.Desc.End())
	return []string{strconv.Itoa(row), descriptorCell(v.Desc), resolution}
}

// V1MemoryRangeNotContainedInV2 reports a v1 descriptor not covered by the
// merged v2 descriptor coverage.
type V1MemoryRangeNotContainedInV2 struct {
	V1 *types.ResourceDescriptor
}

func (v *V1MemoryRangeNotContainedInV2) Kind() string { return KindV1MemoryRangeNotContainedInV2 }
func (v *V1MemoryRangeNotContainedInV2) Header() string {
	return "HOB: V1 Memory Range Not Contained in V2"
}
func (v *V1MemoryRangeNotContainedInV2) Guidance() string {
	return "   All V1 HOB ranges must be described/covered by corresponding V2 HOBs."
}
func (v *V1MemoryRangeNotContainedInV2) TableHeader() []string {
	return []string{"#", "V1 Hob", "Violation/Resolution"}
}
func (v *V1MemoryRangeNotContainedInV2) TableRow(row int) []string {
	resolution := "V1 Resource Descriptor HOB needs a\ncorresponding V2 Resource Descriptor HOB"
	return []string{strconv.Itoa(row), descriptorCell(v.V1), resolution}
}

// V2ContainsUceAttribute reports a v2 descriptor carrying the deprecated
// UCE bit.
type V2ContainsUceAttribute struct {
	V2         *types.ResourceDescriptor
	Attributes uint64
}

func (v *V2ContainsUceAttribute) Kind() string   { return KindV2ContainsUceAttribute }
func (v *V2ContainsUceAttribute) Header() string { return "HOB: V2 Range Contains UCE Attribute" }
func (v *V2ContainsUceAttribute) Guidance() string {
	return "   V2 HOBs must not carry the deprecated EFI_MEMORY_UCE attribute."
}
func (v *V2ContainsUceAttribute) TableHeader() []string {
	return []string{"#", "V2 Hob", "Violation/Resolution"}
}
func (v *V2ContainsUceAttribute) TableRow(row int) []string {
	resolution := fmt.Sprintf("Attributes(%#x) must not contain\nMEMORY_UCE(0x10)", v.Attributes)
	return []string{strconv.Itoa(row), descriptorCell(v.V2), resolution}
}

// V2MissingValidCacheabilityAttribute reports a memory-typed v2 descriptor
// without exactly one cacheability bit.
type V2MissingValidCacheabilityAttribute struct {
	V2         *types.ResourceDescriptor
	Attributes uint64
}

func (v *V2MissingValidCacheabilityAttribute) Kind() string {
	return KindV2MissingValidCacheabilityAttribute
}
func (v *V2MissingValidCacheabilityAttribute) Header() string {
	return "HOB: V2 Missing Valid Cacheability Attribute"
}
func (v *V2MissingValidCacheabilityAttribute) Guidance() string {
	return "   Platforms must produce Resource Descriptor HOB v2s with a single valid\n" +
		"   cacheability attribute set. These can be the existing Resource Descriptor\n" +
		"   HOB fields with the cacheability attribute as the only additional field in\n" +
		"   the v2 HOB.\n" +
		"   Ref: " + requirementsDoc
}
func (v *V2MissingValidCacheabilityAttribute) TableHeader() []string {
	return []string{"#", "V2 Hob", "Violation/Resolution"}
}
func (v *V2MissingValidCacheabilityAttribute) TableRow(row int) []string {
	resolution := fmt.Sprintf(
		"V2 Hob must contain exactly one\nvalid cacheability attribute(%#x)\n"+
			" - MEMORY_UC(0x1)\n - MEMORY_WC(0x2)\n - MEMORY_WT(0x4)\n - MEMORY_WB(0x8)\n - MEMORY_WP(0x1000)",
		v.Attributes)
	return []string{strconv.Itoa(row), descriptorCell(v.V2), resolution}
}

// V2InvalidIoCacheabilityAttributes reports an IO-typed v2 descriptor with
// any extended attribute bits set.
type V2InvalidIoCacheabilityAttributes struct {
	V2         *types.ResourceDescriptor
	Attributes uint64
}

func (v *V2InvalidIoCacheabilityAttributes) Kind() string {
	return KindV2InvalidIoCacheabilityAttributes
}
func (v *V2InvalidIoCacheabilityAttributes) Header() string {
	return "HOB: V2 Invalid IO Cacheability Attributes"
}
func (v *V2InvalidIoCacheabilityAttributes) Guidance() string {
	return "   Platforms must produce Resource Descriptor HOB v2s with no cacheability\n" +
		"   or memory protection attributes set for IO resource types."
}
func (v *V2InvalidIoCacheabilityAttributes) TableHeader() []string {
	return []string{"#", "V2 Hob", "Violation/Resolution"}
}
func (v *V2InvalidIoCacheabilityAttributes) TableRow(row int) []string {
	resolution := fmt.Sprintf(
		"V2 Hob must not contain cacheability or\nmemory protection attributes(%#x) for IO ranges",
		v.Attributes)
	return []string{strconv.Itoa(row), descriptorCell(v.V2), resolution}
}
