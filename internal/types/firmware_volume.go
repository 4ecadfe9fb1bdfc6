package types

// File type tags emitted by the capture agent for firmware file system
// entries. The set mirrors the FFS file types the capture walks.
const (
	FileTypeRaw                 = "Raw"
	FileTypeFreeForm            = "FreeForm"
	FileTypeSecurityCore        = "SecurityCore"
	FileTypePeiCore             = "PeiCore"
	FileTypeDxeCore             = "DxeCore"
	FileTypePeim                = "Peim"
	FileTypeDriver              = "Driver"
	FileTypeCombinedPeimDriver  = "CombinedPeimDriver"
	FileTypeApplication         = "Application"
	FileTypeMm                  = "Mm"
	FileTypeFirmwareVolumeImage = "FirmwareVolumeImage"
	FileTypeCombinedMmDxe       = "CombinedMmDxe"
	FileTypeMmCore              = "MmCore"
	FileTypeMmStandalone        = "MmStandalone"
	FileTypeMmCoreStandalone    = "MmCoreStandalone"
	FileTypeFfsPad              = "FfsPad"
	FileTypeFfsUnknown          = "FfsUnknown"
)

// SectionTypePE32 marks sections the capture agent identified as PE images;
// only these carry PEInfo.
const SectionTypePE32 = "Pe32"

// LzmaCompressionPrefix starts every compression label the capture agent
// writes for LZMA-encoded sections ("LZMA Compressed", "LZMA F86 Compressed").
// The trailing space keeps the match off labels that merely mention LZMA.
const LzmaCompressionPrefix = "LZMA "

// FirmwareVolume is one captured firmware volume with its file listing.
type FirmwareVolume struct {
	Name        string         `json:"fv_name"`
	Length      uint64         `json:"fv_length"`
	BaseAddress uint64         `json:"fv_base_address"`
	Attributes  uint32         `json:"fv_attributes"`
	Files       []FirmwareFile `json:"files"`
}

// FirmwareFile is one firmware file system entry inside a volume.
type FirmwareFile struct {
	Name       string            `json:"name"`
	Type       string            `json:"file_type"`
	Length     uint64            `json:"length"`
	Attributes uint32            `json:"attributes"`
	Sections   []FirmwareSection `json:"sections"`
}

// FirmwareSection is one encoded component of a firmware file.
type FirmwareSection struct {
	Type            string  `json:"section_type"`
	Length          uint64  `json:"length"`
	CompressionType string  `json:"compression_type"`
	PEInfo          *PEInfo `json:"pe_info,omitempty"`
}
