package types

// COFF machine types seen in captured PE headers.
const (
	CoffMachineX64   uint16 = 0x8664
	CoffMachineArm64 uint16 = 0xAA64
)

// PE optional-header subsystems relevant to firmware images.
const (
	SubsystemEfiApplication       uint16 = 10
	SubsystemEfiBootServiceDriver uint16 = 11
	SubsystemEfiRuntimeDriver     uint16 = 12
)

// Arm64RuntimeDriverAlignment is the section alignment required of ARM64
// EFI runtime drivers so the OS can remap runtime code at 64 KiB strides.
const Arm64RuntimeDriverAlignment uint32 = 0x10000

// PEInfo holds the header facts the capture agent extracts from a PE image
// section. It is absent on non-executable sections.
type PEInfo struct {
	SectionAlignment uint32 `json:"section_alignment"`
	Machine          uint16 `json:"machine"`
	Subsystem        uint16 `json:"subsystem"`
}
