// Package services wires snapshot loading, schema checking, and the
// validation rule batteries into the operations the commands call.
package services

import (
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/logging"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/report"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/validators/fv"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/validators/hob"
)

// ValidationService decodes a capture file and runs the full rule battery
// over it.
type ValidationService struct {
	config *ToolConfig
}

// NewValidationService creates a validation service with the given tool
// configuration.
func NewValidationService(config *ToolConfig) *ValidationService {
	return &ValidationService{config: config}
}

// Run loads the capture at path and returns the merged violation report.
func (s *ValidationService) Run(path string) (*report.Report, error) {
	snap, err := LoadSnapshot(path, s.config.SchemaValidation)
	if err != nil {
		return nil, err
	}
	return s.ValidateSnapshot(snap)
}

// ValidateSnapshot runs the HOB and firmware volume rule batteries over an
// already decoded snapshot and merges their reports.
func (s *ValidationService) ValidateSnapshot(snap *types.Snapshot) (*report.Report, error) {
	batteries := []struct {
		component string
		validator Validator
	}{
		{logging.ComponentHobValidator, hob.NewValidator(snap.HobList)},
		{logging.ComponentFvValidator, fv.NewValidator(snap.FvList)},
	}

	merged := report.New()
	for _, b := range batteries {
		rep, err := b.validator.Validate()
		if err != nil {
			return nil, err
		}
		logging.For(b.component).Debugw("rule battery complete", "violations", rep.Count())
		merged.Merge(rep)
	}
	return merged, nil
}
