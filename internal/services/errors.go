package services

import "fmt"

// ViolationsError reports a completed validation run that found violations.
// The count feeds the process exit status.
type ViolationsError struct {
	Count int
}

func (e *ViolationsError) Error() string {
	return fmt.Sprintf("found %d validation errors", e.Count)
}
