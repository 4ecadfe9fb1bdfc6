package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/logging"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/report"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/services"
)

var validateFilename string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the full rule battery over a capture file",
	Long: `Validate decodes a boot state capture and checks it against the
Patina DXE readiness rules. The exit status is the number of violations
found, so a clean capture exits 0.

Examples:
  # Validate the configured default capture path
  patina-readiness validate

  # Validate a specific capture with JSON output
  patina-readiness validate -f boot_capture.json -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFilename, "filename", "f", "", "file path of the capture.json")
}

func runValidate(cmd *cobra.Command) error {
	path := validateFilename
	if path == "" {
		path = toolConfig.SnapshotPath
	}
	logging.For(logging.ComponentCLI).Debugw("validating capture", "path", path)

	svc := services.NewValidationService(toolConfig)
	rep, err := svc.Run(path)
	if err != nil {
		return err
	}

	format := outputFormat
	if !cmd.Flags().Changed("output") {
		format = toolConfig.OutputFormat
	}
	if err := writeReport(os.Stdout, rep, format); err != nil {
		return err
	}

	if count := rep.Count(); count > 0 {
		return &services.ViolationsError{Count: count}
	}
	return nil
}

func writeReport(w io.Writer, rep *report.Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rep.Summary(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(rep.Summary())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "table", "":
		rep.Render(w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected table, json, or yaml)", format)
	}
}
