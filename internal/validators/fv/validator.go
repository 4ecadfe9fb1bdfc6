// Package fv checks captured firmware volume listings for content the boot
// environment refuses to dispatch: traditional SMM and combined driver
// modules, LZMA compressed sections, a priori ordering files, and PE images
// whose section alignment cannot be mapped.
package fv

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/report"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
)

// ErrEmptyList marks a capture without firmware volume contents. An empty
// list means the capture stage failed, not that the firmware is clean.
var ErrEmptyList = errors.New("firmware volume list is empty")

// Canonical names of the PEI and DXE dispatch-ordering files.
var (
	peiAprioriFileName = uuid.MustParse("1b45cc0a-156a-428a-af62-49864da0e6e6").String()
	dxeAprioriFileName = uuid.MustParse("fc510ee7-ffdc-11d4-bd41-0080c73c8881").String()
)

// Validator runs the firmware volume rule battery over a captured volume
// list.
type Validator struct {
	fvs []types.FirmwareVolume
}

// NewValidator returns a Validator over the captured firmware volumes.
func NewValidator(fvs []types.FirmwareVolume) *Validator {
	return &Validator{fvs: fvs}
}

// Validate runs every firmware volume rule and returns the merged report.
func (v *Validator) Validate() (*report.Report, error) {
	if len(v.fvs) == 0 {
		return nil, ErrEmptyList
	}

	rep := report.New()
	rep.Merge(v.checkTraditionalSmm())
	rep.Merge(v.checkCombinedDrivers())
	rep.Merge(v.checkFileSections())
	rep.Merge(v.checkAprioriFiles())
	return rep, nil
}

// checkTraditionalSmm flags files dispatched through the traditional SMM
// driver model.
func (v *Validator) checkTraditionalSmm() *report.Report {
	rep := report.New()
	for i := range v.fvs {
		vol := &v.fvs[i]
		for j := range vol.Files {
			file := &vol.Files[j]
			switch file.Type {
			case types.FileTypeCombinedPeimDriver, types.FileTypeMm,
				types.FileTypeCombinedMmDxe, types.FileTypeMmCore:
				rep.Add(&UsesTraditionalSmm{FV: vol, File: file})
			}
		}
	}
	return rep
}

// checkCombinedDrivers flags files whose type spans two dispatch phases.
// Combined types also count as traditional SMM, so such a file is reported
// under both rules.
func (v *Validator) checkCombinedDrivers() *report.Report {
	rep := report.New()
	for i := range v.fvs {
		vol := &v.fvs[i]
		for j := range vol.Files {
			file := &vol.Files[j]
			switch file.Type {
			case types.FileTypeCombinedPeimDriver, types.FileTypeCombinedMmDxe:
				rep.Add(&CombinedDriversPresent{FV: vol, File: file})
			}
		}
	}
	return rep
}

// sectionEligible reports whether a file's sections are subject to the LZMA
// and alignment rules. Only module types the DXE core itself loads count.
func sectionEligible(fileType string) bool {
	switch fileType {
	case types.FileTypeDriver, types.FileTypeApplication, types.FileTypeDxeCore:
		return true
	}
	return false
}

// checkFileSections walks the sections of eligible files and flags LZMA
// compression and PE images with unmappable section alignment.
func (v *Validator) checkFileSections() *report.Report {
	rep := report.New()
	for i := range v.fvs {
		vol := &v.fvs[i]
		for j := range vol.Files {
			file := &vol.Files[j]
			if !sectionEligible(file.Type) {
				continue
			}
			for k := range file.Sections {
				section := &file.Sections[k]
				if strings.HasPrefix(section.CompressionType, types.LzmaCompressionPrefix) {
					rep.Add(&LzmaCompressedSections{FV: vol, File: file, Section: section})
				}

				if section.Type != types.SectionTypePE32 || section.PEInfo == nil {
					continue
				}
				pe := section.PEInfo
				switch {
				// ARM64 runtime drivers stay mapped across
				// SetVirtualAddressMap and need 64k sections.
				case pe.Machine == types.CoffMachineArm64 &&
					pe.Subsystem == types.SubsystemEfiRuntimeDriver &&
					pe.SectionAlignment%types.Arm64RuntimeDriverAlignment != 0:
					rep.Add(&InvalidSectionAlignment{
						FV:                vol,
						File:              file,
						Section:           section,
						RequiredAlignment: types.Arm64RuntimeDriverAlignment,
					})
				case pe.SectionAlignment == 0 ||
					uint64(pe.SectionAlignment)%types.UefiPageSize != 0:
					rep.Add(&InvalidSectionAlignment{
						FV:                vol,
						File:              file,
						Section:           section,
						RequiredAlignment: uint32(types.UefiPageSize),
					})
				}
			}
		}
	}
	return rep
}

// checkAprioriFiles flags the PEI and DXE a priori dispatch-ordering files
// by their well-known names.
func (v *Validator) checkAprioriFiles() *report.Report {
	rep := report.New()
	for i := range v.fvs {
		vol := &v.fvs[i]
		for j := range vol.Files {
			file := &vol.Files[j]
			switch types.NormalizeGUID(file.Name) {
			case peiAprioriFileName, dxeAprioriFileName:
				rep.Add(&ProhibitedAprioriFile{FV: vol, File: file})
			}
		}
	}
	return rep
}
