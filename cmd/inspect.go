package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/services"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/types"
)

var inspectFilename string

// VolumeSummary is one firmware volume row of the inspect output.
type VolumeSummary struct {
	Name        string `json:"name" yaml:"name"`
	BaseAddress uint64 `json:"base_address" yaml:"base_address"`
	Length      uint64 `json:"length" yaml:"length"`
	Files       int    `json:"files" yaml:"files"`
	Sections    int    `json:"sections" yaml:"sections"`
}

// InspectSummary is the machine-readable shape of the inspect output.
type InspectSummary struct {
	HobCounts map[string]int  `json:"hob_counts" yaml:"hob_counts"`
	Volumes   []VolumeSummary `json:"volumes" yaml:"volumes"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a capture file without validating it",
	Long: `Inspect decodes a boot state capture and prints what it contains:
HOB counts by type and the captured firmware volumes. No rules run.

Examples:
  # Summarize the configured default capture path
  patina-readiness inspect

  # Summarize a specific capture as YAML
  patina-readiness inspect -f boot_capture.json -o yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFilename, "filename", "f", "", "file path of the capture.json")
}

func runInspect(cmd *cobra.Command) error {
	path := inspectFilename
	if path == "" {
		path = toolConfig.SnapshotPath
	}

	snap, err := services.LoadSnapshot(path, toolConfig.SchemaValidation)
	if err != nil {
		return err
	}
	summary := summarizeSnapshot(snap)

	format := outputFormat
	if !cmd.Flags().Changed("output") {
		format = toolConfig.OutputFormat
	}
	return writeInspectSummary(os.Stdout, summary, format)
}

func summarizeSnapshot(snap *types.Snapshot) InspectSummary {
	counts := make(map[string]int)
	for _, h := range snap.HobList {
		counts[string(h.HobType())]++
	}

	volumes := make([]VolumeSummary, 0, len(snap.FvList))
	for i := range snap.FvList {
		vol := &snap.FvList[i]
		sections := 0
		for j := range vol.Files {
			sections += len(vol.Files[j].Sections)
		}
		volumes = append(volumes, VolumeSummary{
			Name:        vol.Name,
			BaseAddress: vol.BaseAddress,
			Length:      vol.Length,
			Files:       len(vol.Files),
			Sections:    sections,
		})
	}
	return InspectSummary{HobCounts: counts, Volumes: volumes}
}

func writeInspectSummary(w io.Writer, summary InspectSummary, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(summary)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "table", "":
		renderInspectTables(w, summary)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected table, json, or yaml)", format)
	}
}

var (
	inspectSectionStyle = lipgloss.NewStyle().Bold(true)
	inspectBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	inspectHeaderStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	inspectCellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func newInspectTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(inspectBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return inspectHeaderStyle
			}
			return inspectCellStyle
		}).
		Headers(headers...)
}

func renderInspectTables(w io.Writer, summary InspectSummary) {
	fmt.Fprintln(w, inspectSectionStyle.Render("HOBs:"))
	hobTable := newInspectTable("Hob Type", "Count")
	hobTypes := make([]string, 0, len(summary.HobCounts))
	for hobType := range summary.HobCounts {
		hobTypes = append(hobTypes, hobType)
	}
	sort.Strings(hobTypes)
	for _, hobType := range hobTypes {
		hobTable.Row(hobType, strconv.Itoa(summary.HobCounts[hobType]))
	}
	fmt.Fprintln(w, hobTable)

	fmt.Fprintln(w, inspectSectionStyle.Render("Firmware Volumes:"))
	fvTable := newInspectTable("FV", "Base Address", "Length", "Files", "Sections")
	for _, vol := range summary.Volumes {
		fvTable.Row(vol.Name,
			fmt.Sprintf("%#x", vol.BaseAddress),
			fmt.Sprintf("%#x", vol.Length),
			strconv.Itoa(vol.Files),
			strconv.Itoa(vol.Sections))
	}
	fmt.Fprintln(w, fvTable)
}
