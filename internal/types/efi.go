// Package types defines the decoded boot-state snapshot model: the HOB
// (Hand-Off Block) record variants, firmware volume contents, and the EFI
// constants the validation rules are written against.
package types

// UefiPageSize is the UEFI page granularity (4 KiB).
const UefiPageSize uint64 = 0x1000

// Resource types carried by resource descriptor HOBs (EFI_RESOURCE_*).
const (
	ResourceSystemMemory       uint32 = 0x00000000
	ResourceMemoryMappedIO     uint32 = 0x00000001
	ResourceIO                 uint32 = 0x00000002
	ResourceFirmwareDevice     uint32 = 0x00000003
	ResourceMemoryMappedIOPort uint32 = 0x00000004
	ResourceMemoryReserved     uint32 = 0x00000005
	ResourceIOReserved         uint32 = 0x00000006
)

// Memory cacheability and protection attributes (EFI_MEMORY_*), as carried
// in the extended attributes of a v2 resource descriptor.
const (
	MemoryUC  uint64 = 0x00000001
	MemoryWC  uint64 = 0x00000002
	MemoryWT  uint64 = 0x00000004
	MemoryWB  uint64 = 0x00000008
	MemoryUCE uint64 = 0x00000010
	MemoryWP  uint64 = 0x00001000
	MemoryRP  uint64 = 0x00002000
	MemoryXP  uint64 = 0x00004000
	MemoryRO  uint64 = 0x00020000
)

// CacheAttributeMask covers every defined cacheability bit, including the
// deprecated UCE bit.
const CacheAttributeMask uint64 = MemoryUC | MemoryWC | MemoryWT | MemoryWB | MemoryUCE | MemoryWP

// IsIOResource reports whether a resource type describes IO space rather
// than memory space.
func IsIOResource(resourceType uint32) bool {
	return resourceType == ResourceIO || resourceType == ResourceIOReserved
}
