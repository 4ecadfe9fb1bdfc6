package fv

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/interfaces"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
)

// Violation kind names used as report grouping keys.
const (
	KindCombinedDriversPresent  = "CombinedDriversPresent"
	KindInvalidSectionAlignment = "InvalidSectionAlignment"
	KindLzmaCompressedSections  = "LzmaCompressedSections"
	KindProhibitedAprioriFile   = "ProhibitedAprioriFile"
	KindUsesTraditionalSmm      = "UsesTraditionalSmm"
)

const requirementsDoc = "https://github.com/OpenDevicePartnership/patina/blob/main/docs/src/integrate/patina_requirements.md"

var (
	_ interfaces.Violation = (*UsesTraditionalSmm)(nil)
	_ interfaces.Violation = (*CombinedDriversPresent)(nil)
	_ interfaces.Violation = (*LzmaCompressedSections)(nil)
	_ interfaces.Violation = (*InvalidSectionAlignment)(nil)
	_ interfaces.Violation = (*ProhibitedAprioriFile)(nil)
)

// sectionCell renders a section descriptor as an indented JSON evidence cell.
func sectionCell(s *types.FirmwareSection) string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "section serialization failed"
	}
	return string(data)
}

// UsesTraditionalSmm reports a file dispatched through the traditional SMM
// driver model.
type UsesTraditionalSmm struct {
	FV   *types.FirmwareVolume
	File *types.FirmwareFile
}

func (v *UsesTraditionalSmm) Kind() string   { return KindUsesTraditionalSmm }
func (v *UsesTraditionalSmm) Header() string { return "FV: Uses Traditional SMM Driver" }
func (v *UsesTraditionalSmm) Guidance() string {
	return "   Platforms must transition to Standalone MM (or not use MM at all, as\n" +
		"   applicable) using the provided guidance. All combined modules must be\n" +
		"   dropped in favor of single phase modules.\n" +
		"   Ref: " + requirementsDoc
}
func (v *UsesTraditionalSmm) TableHeader() []string {
	return []string{"#", "Traditional SMM Driver", "Violation/Resolution"}
}
func (v *UsesTraditionalSmm) TableRow(row int) []string {
	cell := fmt.Sprintf("FV: %s\nSMM Driver File: %s\nSMM Driver Type: %s",
		v.FV.Name, v.File.Name, v.File.Type)
	resolution := "File types must not be\n" +
		" - COMBINED_MM_DXE(0x0C)\n - COMBINED_PEIM_DRIVER(0x08)\n - MM(0x0A)\n - MM_CORE(0x0D)"
	return []string{strconv.Itoa(row), cell, resolution}
}

// CombinedDriversPresent reports a file whose type spans two dispatch phases.
type CombinedDriversPresent struct {
	FV   *types.FirmwareVolume
	File *types.FirmwareFile
}

func (v *CombinedDriversPresent) Kind() string   { return KindCombinedDriversPresent }
func (v *CombinedDriversPresent) Header() string { return "FV: Combined Drivers Present" }
func (v *CombinedDriversPresent) Guidance() string {
	return "   Firmware volumes must not contain combined drivers.\n" +
		"   The following file types are prohibited\n" +
		"    - COMBINED_MM_DXE(0x0C)\n" +
		"    - COMBINED_PEIM_DRIVER(0x08)\n" +
		"   Ref: " + requirementsDoc
}
func (v *CombinedDriversPresent) TableHeader() []string {
	return []string{"#", "File", "Violation/Resolution"}
}
func (v *CombinedDriversPresent) TableRow(row int) []string {
	cell := fmt.Sprintf("FV: %s\nFile: %s\nFile Type: %s", v.FV.Name, v.File.Name, v.File.Type)
	resolution := "File types must not be\n - COMBINED_MM_DXE(0x0C)\n - COMBINED_PEIM_DRIVER(0x08)"
	return []string{strconv.Itoa(row), cell, resolution}
}

// LzmaCompressedSections reports a section that the boot environment would
// have to LZMA-decompress during dispatch.
type LzmaCompressedSections struct {
	FV      *types.FirmwareVolume
	File    *types.FirmwareFile
	Section *types.FirmwareSection
}

func (v *LzmaCompressedSections) Kind() string   { return KindLzmaCompressedSections }
func (v *LzmaCompressedSections) Header() string { return "FV: LZMA Compressed Sections Present" }
func (v *LzmaCompressedSections) Guidance() string {
	return "   Temporarily, LZMA compressed sections that will be decompressed in DXE\n" +
		"   should use Brotli or TianoCompress instead.\n" +
		"   Tracking: https://github.com/OpenDevicePartnership/patina/issues/517\n" +
		"   Ref: " + requirementsDoc
}
func (v *LzmaCompressedSections) TableHeader() []string {
	return []string{"#", "LZMA Section", "Violation/Resolution"}
}
func (v *LzmaCompressedSections) TableRow(row int) []string {
	cell := fmt.Sprintf("FV: %s\nFile: %s\nSection: %s", v.FV.Name, v.File.Name, sectionCell(v.Section))
	resolution := "File section must not be compressed with LZMA"
	return []string{strconv.Itoa(row), cell, resolution}
}

// InvalidSectionAlignment reports a PE image section whose alignment cannot
// be mapped with the page granularity its machine and subsystem require.
type InvalidSectionAlignment struct {
	FV                *types.FirmwareVolume
	File              *types.FirmwareFile
	Section           *types.FirmwareSection
	RequiredAlignment uint32
}

func (v *InvalidSectionAlignment) Kind() string   { return KindInvalidSectionAlignment }
func (v *InvalidSectionAlignment) Header() string { return "FV: PE Image Invalid Section Alignment" }
func (v *InvalidSectionAlignment) Guidance() string {
	return "   All PE images must have section alignment that is a multiple of the UEFI\n" +
		"   page size. This is not a PI spec requirement, but a Patina requirement.\n" +
		"   Platforms should drop unaligned images or rebuild them with page-aligned\n" +
		"   sections.\n" +
		"   Ref: " + requirementsDoc
}
func (v *InvalidSectionAlignment) TableHeader() []string {
	return []string{"#", "PE Image Section Alignment", "Violation/Resolution"}
}
func (v *InvalidSectionAlignment) TableRow(row int) []string {
	cell := fmt.Sprintf("FV: %s\nFile: %s\nSection Alignment: %#x\nRequired Alignment: %#x",
		v.FV.Name, v.File.Name, v.Section.PEInfo.SectionAlignment, v.RequiredAlignment)
	resolution := "PE images must have section alignment that is\na positive multiple of UEFI_PAGE_SIZE (4k).\n" +
		"ARM64 DXE_RUNTIME_DRIVERs must have section\nalignment that is a positive multiple of 64k"
	return []string{strconv.Itoa(row), cell, resolution}
}

// ProhibitedAprioriFile reports a dispatch-ordering file the boot environment
// refuses to honor.
type ProhibitedAprioriFile struct {
	FV   *types.FirmwareVolume
	File *types.FirmwareFile
}

func (v *ProhibitedAprioriFile) Kind() string   { return KindProhibitedAprioriFile }
func (v *ProhibitedAprioriFile) Header() string { return "FV: Prohibited Apriori File Present" }
func (v *ProhibitedAprioriFile) Guidance() string {
	return "   A priori sections must be removed and proper driver dispatch must be\n" +
		"   ensured using depex statements. Drivers may produce empty protocols solely\n" +
		"   so that other drivers can name that protocol in a depex statement, if\n" +
		"   required. Platforms may also list drivers in FFSes in the order they\n" +
		"   should be dispatched, though relying on depex statements is recommended.\n" +
		"   Ref: " + requirementsDoc + "\n" +
		"   Ref: https://github.com/OpenDevicePartnership/patina-qemu/pull/40"
}
func (v *ProhibitedAprioriFile) TableHeader() []string {
	return []string{"#", "A Priori File", "Violation/Resolution"}
}
func (v *ProhibitedAprioriFile) TableRow(row int) []string {
	cell := fmt.Sprintf("FV: %s\nFile: %s", v.FV.Name, v.File.Name)
	resolution := "The following a priori files are not supported\n" +
		" - PeiAprioriFileNameGuid(1b45cc0a-156a-428a-af62-49864da0e6e6)\n" +
		" - AprioriGuid(fc510ee7-ffdc-11d4-bd41-0080c73c8881)"
	return []string{strconv.Itoa(row), cell, resolution}
}
