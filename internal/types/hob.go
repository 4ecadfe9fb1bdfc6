package types

import (
	"encoding/json"
	"fmt"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/interfaces"
)

var (
	_ interfaces.Interval = (*ResourceDescriptor)(nil)
	_ interfaces.Interval = (*MemoryAllocationDescriptor)(nil)
)

// HobType is the wire discriminant of a HOB record, carried in the
// snapshot's "type" field.
type HobType string

const (
	HobTypeHandoff              HobType = "handoff"
	HobTypeMemoryAllocation     HobType = "memory_allocation"
	HobTypeResourceDescriptor   HobType = "resource_descriptor"
	HobTypeResourceDescriptorV2 HobType = "resource_descriptor_v2"
	HobTypeGuidExtension        HobType = "guid_extension"
	HobTypeFirmwareVolume       HobType = "firmware_volume"
	HobTypeCPU                  HobType = "cpu"
	HobTypeUnknown              HobType = "unknown_hob"
)

// Hob is one decoded hand-off block record. The concrete variants form a
// closed set; rules select the variants they care about with a type switch.
type Hob interface {
	// HobType returns the record's wire discriminant
	HobType() HobType
}

// HandoffHob is the phase handoff information table (PHIT) record.
type HandoffHob struct {
	Version          uint32 `json:"version"`
	MemoryTop        uint64 `json:"memory_top"`
	MemoryBottom     uint64 `json:"memory_bottom"`
	FreeMemoryTop    uint64 `json:"free_memory_top"`
	FreeMemoryBottom uint64 `json:"free_memory_bottom"`
	EndOfHobList     uint64 `json:"end_of_hob_list"`
}

func (h *HandoffHob) HobType() HobType { return HobTypeHandoff }

// MemoryAllocationDescriptor describes one boot-time memory allocation.
type MemoryAllocationDescriptor struct {
	Name              string `json:"name"`
	MemoryBaseAddress uint64 `json:"memory_base_address"`
	MemoryLength      uint64 `json:"memory_length"`
	MemoryType        uint32 `json:"memory_type"`
}

func (d *MemoryAllocationDescriptor) Start() uint64 { return d.MemoryBaseAddress }
func (d *MemoryAllocationDescriptor) End() uint64   { return d.MemoryBaseAddress + d.MemoryLength }

// MemoryAllocationHob wraps an allocation descriptor record.
type MemoryAllocationHob struct {
	AllocDescriptor MemoryAllocationDescriptor `json:"alloc_descriptor"`
}

func (h *MemoryAllocationHob) HobType() HobType { return HobTypeMemoryAllocation }

// ResourceDescriptor describes one physical address range's owner, resource
// type, and resource attributes. It is the payload of a v1 resource
// descriptor HOB and the embedded core of a v2 one.
type ResourceDescriptor struct {
	Owner             string `json:"owner"`
	ResourceType      uint32 `json:"resource_type"`
	ResourceAttribute uint32 `json:"resource_attribute"`
	PhysicalStart     uint64 `json:"physical_start"`
	ResourceLength    uint64 `json:"resource_length"`
}

func (d *ResourceDescriptor) Start() uint64 { return d.PhysicalStart }
func (d *ResourceDescriptor) End() uint64   { return d.PhysicalStart + d.ResourceLength }

// ResourceDescriptorHob is the v1 generation record; its descriptor fields
// sit inline next to the discriminant on the wire.
type ResourceDescriptorHob struct {
	ResourceDescriptor
}

func (h *ResourceDescriptorHob) HobType() HobType { return HobTypeResourceDescriptor }

// ResourceDescriptorV2Hob is the v2 generation record: the v1 descriptor
// plus the extended attributes bitmask new platforms must populate.
type ResourceDescriptorV2Hob struct {
	V1         ResourceDescriptor `json:"v1"`
	Attributes uint64             `json:"attributes"`
}

func (h *ResourceDescriptorV2Hob) HobType() HobType { return HobTypeResourceDescriptorV2 }

// GuidExtensionHob is a vendor-defined record identified by its name GUID.
type GuidExtensionHob struct {
	Name string `json:"name"`
}

func (h *GuidExtensionHob) HobType() HobType { return HobTypeGuidExtension }

// FirmwareVolumeHob points at a firmware volume mapped into the address
// space. The volume's contents arrive separately in the snapshot's fv_list.
type FirmwareVolumeHob struct {
	BaseAddress uint64 `json:"base_address"`
	Length      uint64 `json:"length"`
}

func (h *FirmwareVolumeHob) HobType() HobType { return HobTypeFirmwareVolume }

// CPUHob carries the processor's address space widths.
type CPUHob struct {
	SizeOfMemorySpace uint8 `json:"size_of_memory_space"`
	SizeOfIOSpace     uint8 `json:"size_of_io_space"`
}

func (h *CPUHob) HobType() HobType { return HobTypeCPU }

// UnknownHob stands in for record kinds the capture agent recognized but
// did not expand.
type UnknownHob struct{}

func (h *UnknownHob) HobType() HobType { return HobTypeUnknown }

// DecodeHob decodes one hob_list element by its "type" discriminant. A
// discriminant outside the closed set is a decode error, not an UnknownHob.
func DecodeHob(data []byte) (Hob, error) {
	var tag struct {
		Type HobType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("reading hob discriminant: %w", err)
	}

	var (
		hob Hob
		err error
	)
	switch tag.Type {
	case HobTypeHandoff:
		h := &HandoffHob{}
		err = json.Unmarshal(data, h)
		hob = h
	case HobTypeMemoryAllocation:
		h := &MemoryAllocationHob{}
		err = json.Unmarshal(data, h)
		hob = h
	case HobTypeResourceDescriptor:
		h := &ResourceDescriptorHob{}
		err = json.Unmarshal(data, h)
		hob = h
	case HobTypeResourceDescriptorV2:
		h := &ResourceDescriptorV2Hob{}
		err = json.Unmarshal(data, h)
		hob = h
	case HobTypeGuidExtension:
		h := &GuidExtensionHob{}
		err = json.Unmarshal(data, h)
		hob = h
	case HobTypeFirmwareVolume:
		h := &FirmwareVolumeHob{}
		err = json.Unmarshal(data, h)
		hob = h
	case HobTypeCPU:
		h := &CPUHob{}
		err = json.Unmarshal(data, h)
		hob = h
	case HobTypeUnknown:
		hob = &UnknownHob{}
	default:
		return nil, fmt.Errorf("unknown hob type %q", tag.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s hob: %w", tag.Type, err)
	}
	return hob, nil
}
