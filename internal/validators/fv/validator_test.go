package fv

import (
	"errors"
	"testing"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
)

func volume(name string, files ...types.FirmwareFile) types.FirmwareVolume {
	return types.FirmwareVolume{
		Name:        name,
		Length:      1024,
		BaseAddress: 0x1000,
		Files:       files,
	}
}

func file(name, fileType string, sections ...types.FirmwareSection) types.FirmwareFile {
	return types.FirmwareFile{
		Name:     name,
		Type:     fileType,
		Length:   512,
		Sections: sections,
	}
}

func peSection(alignment uint32, machine, subsystem uint16) types.FirmwareSection {
	return types.FirmwareSection{
		Type:            types.SectionTypePE32,
		Length:          256,
		CompressionType: "uncompressed",
		PEInfo:          &types.PEInfo{SectionAlignment: alignment, Machine: machine, Subsystem: subsystem},
	}
}

func TestTraditionalSmmDrivers(t *testing.T) {
	v := NewValidator([]types.FirmwareVolume{volume("FV1",
		file("File1", types.FileTypeCombinedPeimDriver),
		file("File2", types.FileTypeMm),
		file("File3", types.FileTypeCombinedMmDxe),
		file("File4", types.FileTypeMmCore),
		file("File5", types.FileTypeMmStandalone),
		file("File6", types.FileTypeMmCoreStandalone),
		file("File7", types.FileTypeDriver),
	)})
	// Standalone MM modules are the approved replacement and stay clean.
	if got := v.checkTraditionalSmm().Count(); got != 4 {
		t.Errorf("traditional smm count = %d; want 4", got)
	}
}

func TestCombinedDrivers(t *testing.T) {
	v := NewValidator([]types.FirmwareVolume{volume("FV1",
		file("File1", types.FileTypeCombinedPeimDriver),
		file("File2", types.FileTypeCombinedMmDxe),
	)})
	if got := v.checkCombinedDrivers().Count(); got != 2 {
		t.Errorf("combined driver count = %d; want 2", got)
	}

	// MmCore is traditional SMM but not a combined type.
	v = NewValidator([]types.FirmwareVolume{volume("FV2",
		file("File3", types.FileTypeDriver),
		file("File4", types.FileTypeMmCore),
	)})
	if got := v.checkCombinedDrivers().Count(); got != 0 {
		t.Errorf("combined driver count = %d; want 0", got)
	}
}

func TestCombinedDriverReportedUnderBothRules(t *testing.T) {
	v := NewValidator([]types.FirmwareVolume{volume("FV1",
		file("File1", types.FileTypeCombinedMmDxe),
	)})
	rep, err := v.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := rep.Count(); got != 2 {
		t.Errorf("total violations = %d; want 2 (kinds: %v)", got, rep.Kinds())
	}
	for _, kind := range []string{KindUsesTraditionalSmm, KindCombinedDriversPresent} {
		if len(rep.ViolationsFor(kind)) != 1 {
			t.Errorf("violations under %s = %d; want 1", kind, len(rep.ViolationsFor(kind)))
		}
	}
}

func TestAprioriFiles(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     int
	}{
		{"pei apriori file", "1b45cc0a-156a-428a-af62-49864da0e6e6", 1},
		{"dxe apriori file", "fc510ee7-ffdc-11d4-bd41-0080c73c8881", 1},
		{"uppercase name still matches", "1B45CC0A-156A-428A-AF62-49864DA0E6E6", 1},
		{"braced name still matches", "{fc510ee7-ffdc-11d4-bd41-0080c73c8881}", 1},
		{"unrelated guid", "11111111-2222-3333-4444-555555555555", 0},
		{"human readable name", "DxeMain", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator([]types.FirmwareVolume{volume("FV1",
				file(tt.fileName, types.FileTypeFreeForm),
			)})
			if got := v.checkAprioriFiles().Count(); got != tt.want {
				t.Errorf("apriori count for %q = %d; want %d", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestLzmaCompressedSections(t *testing.T) {
	lzma := types.FirmwareSection{Type: "GuidDefined", Length: 256, CompressionType: "LZMA Compressed"}

	tests := []struct {
		name     string
		fileType string
		section  types.FirmwareSection
		want     int
	}{
		{"lzma section in driver", types.FileTypeDriver, lzma, 1},
		{"lzma f86 section in driver", types.FileTypeDriver,
			types.FirmwareSection{Type: "GuidDefined", Length: 256, CompressionType: "LZMA F86 Compressed"}, 1},
		{"uncompressed section in driver", types.FileTypeDriver,
			types.FirmwareSection{Type: "GuidDefined", Length: 256, CompressionType: "uncompressed"}, 0},
		{"lzma section in ineligible file", types.FileTypeMmCoreStandalone, lzma, 0},
		{"label without trailing space", types.FileTypeDriver,
			types.FirmwareSection{Type: "GuidDefined", Length: 256, CompressionType: "LZMAish"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator([]types.FirmwareVolume{volume("FV1",
				file("File1", tt.fileType, tt.section),
			)})
			if got := v.checkFileSections().Count(); got != tt.want {
				t.Errorf("lzma count = %d; want %d", got, tt.want)
			}
		})
	}
}

func alignmentViolations(t *testing.T, fileType string, alignment uint32, machine, subsystem uint16) int {
	t.Helper()
	v := NewValidator([]types.FirmwareVolume{volume("FV1",
		file("File1", fileType, peSection(alignment, machine, subsystem)),
	)})
	return v.checkFileSections().Count()
}

func TestSectionAlignment(t *testing.T) {
	tests := []struct {
		name      string
		fileType  string
		alignment uint32
		machine   uint16
		subsystem uint16
		want      int
	}{
		{"not a page multiple", types.FileTypeDriver,
			12345, types.CoffMachineX64, types.SubsystemEfiRuntimeDriver, 1},
		{"zero alignment", types.FileTypeDriver,
			0, types.CoffMachineX64, types.SubsystemEfiBootServiceDriver, 1},
		{"two pages", types.FileTypeDriver,
			2 * uint32(types.UefiPageSize), types.CoffMachineX64, types.SubsystemEfiBootServiceDriver, 0},
		{"arm64 runtime driver at two pages", types.FileTypeDriver,
			2 * uint32(types.UefiPageSize), types.CoffMachineArm64, types.SubsystemEfiRuntimeDriver, 1},
		{"arm64 runtime driver at 64k", types.FileTypeDriver,
			types.Arm64RuntimeDriverAlignment, types.CoffMachineArm64, types.SubsystemEfiRuntimeDriver, 0},
		{"arm64 runtime driver at zero", types.FileTypeDriver,
			0, types.CoffMachineArm64, types.SubsystemEfiRuntimeDriver, 1},
		{"arm64 boot service driver at two pages", types.FileTypeDriver,
			2 * uint32(types.UefiPageSize), types.CoffMachineArm64, types.SubsystemEfiBootServiceDriver, 0},
		{"arm64 application at two pages", types.FileTypeApplication,
			2 * uint32(types.UefiPageSize), types.CoffMachineArm64, types.SubsystemEfiApplication, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alignmentViolations(t, tt.fileType, tt.alignment, tt.machine, tt.subsystem)
			if got != tt.want {
				t.Errorf("alignment violations = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestSectionAlignmentRequiredValue(t *testing.T) {
	v := NewValidator([]types.FirmwareVolume{volume("FV1",
		file("File1", types.FileTypeDriver,
			peSection(2*uint32(types.UefiPageSize), types.CoffMachineArm64, types.SubsystemEfiRuntimeDriver)),
	)})
	rep := v.checkFileSections()
	violations := rep.ViolationsFor(KindInvalidSectionAlignment)
	if len(violations) != 1 {
		t.Fatalf("alignment violations = %d; want 1", len(violations))
	}
	got := violations[0].(*InvalidSectionAlignment).RequiredAlignment
	if got != types.Arm64RuntimeDriverAlignment {
		t.Errorf("required alignment = %#x; want %#x", got, types.Arm64RuntimeDriverAlignment)
	}
}

func TestSectionRulesEligibility(t *testing.T) {
	eligible := map[string]bool{
		types.FileTypeDriver:      true,
		types.FileTypeApplication: true,
		types.FileTypeDxeCore:     true,
	}
	allTypes := []string{
		types.FileTypeRaw, types.FileTypeFreeForm, types.FileTypeSecurityCore,
		types.FileTypePeiCore, types.FileTypeDxeCore, types.FileTypePeim,
		types.FileTypeDriver, types.FileTypeCombinedPeimDriver, types.FileTypeApplication,
		types.FileTypeMm, types.FileTypeFirmwareVolumeImage, types.FileTypeCombinedMmDxe,
		types.FileTypeMmCore, types.FileTypeMmStandalone, types.FileTypeMmCoreStandalone,
		types.FileTypeFfsPad, types.FileTypeFfsUnknown,
	}
	for _, fileType := range allTypes {
		want := 0
		if eligible[fileType] {
			want = 1
		}
		// Alignment 12345 violates whenever the file is checked at all.
		got := alignmentViolations(t, fileType, 12345,
			types.CoffMachineX64, types.SubsystemEfiBootServiceDriver)
		if got != want {
			t.Errorf("alignment violations for %s = %d; want %d", fileType, got, want)
		}
	}
}

func TestValidateEmptyList(t *testing.T) {
	_, err := NewValidator(nil).Validate()
	if !errors.Is(err, ErrEmptyList) {
		t.Errorf("Validate() error = %v; want ErrEmptyList", err)
	}
}

func TestValidateCollectsAcrossRules(t *testing.T) {
	v := NewValidator([]types.FirmwareVolume{
		volume("FVMAIN",
			file("File1", types.FileTypeCombinedMmDxe),
			file("File2", types.FileTypeDriver,
				types.FirmwareSection{Type: "GuidDefined", Length: 256, CompressionType: "LZMA Compressed"}),
		),
		volume("FVBOOT",
			file("1b45cc0a-156a-428a-af62-49864da0e6e6", types.FileTypeFreeForm),
		),
	})

	rep, err := v.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	// Combined file fires both the SMM and combined rules.
	if got := rep.Count(); got != 4 {
		t.Errorf("total violations = %d; want 4 (kinds: %v)", got, rep.Kinds())
	}
	for _, kind := range []string{
		KindUsesTraditionalSmm,
		KindCombinedDriversPresent,
		KindLzmaCompressedSections,
		KindProhibitedAprioriFile,
	} {
		if len(rep.ViolationsFor(kind)) != 1 {
			t.Errorf("violations under %s = %d; want 1", kind, len(rep.ViolationsFor(kind)))
		}
	}
}
