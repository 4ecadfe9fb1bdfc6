// Command patina-readiness validates captured pre-DXE boot state against
// Patina requirements. The exit status is the number of violations found,
// so automation can gate on a zero exit.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/OpenDevicePartnership/patina-readiness-tool/cmd"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/services"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	var verr *services.ViolationsError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", verr)
		os.Exit(verr.Count)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
