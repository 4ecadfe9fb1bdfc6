package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/logging"
	"github.com/OpenDevicePartnership/patina-readiness-tool/internal/services"
)

var (
	// Global output flags only
	verbose      bool
	outputFormat string

	toolConfig *services.ToolConfig
)

var rootCmd = &cobra.Command{
	Use:   "patina-readiness",
	Short: "Validate captured boot state against Patina DXE requirements",
	Long: `patina-readiness inspects a JSON capture of the pre-DXE boot state
(the HOB list handed to the DXE core and the contents of the exposed
firmware volumes) and reports everything a Patina DXE core would
reject at dispatch time.

Commands:
  validate    Run the full rule battery over a capture file
  inspect     Summarize a capture file without validating it`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := services.LoadToolConfig()
		if err != nil {
			return err
		}
		toolConfig = config
		logging.Init(verbose || config.Verbose)
		return nil
	},
}

// Execute runs the root command and returns its error so main can map it
// to an exit status.
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
}
