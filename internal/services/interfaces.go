package services

import (
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/report"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/validators/fv"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/validators/hob"
)

// Validator runs one rule battery over decoded snapshot content and returns
// the violations it found. An error means the battery could not run at all,
// not that violations exist.
type Validator interface {
	Validate() (*report.Report, error)
}

var (
	_ Validator = (*hob.Validator)(nil)
	_ Validator = (*fv.Validator)(nil)
)
