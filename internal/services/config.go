package services

import (
	"fmt"

	"github.com/spf13/viper"
)

// ToolConfig holds tool-wide settings sourced from config files, environment
// variables, and defaults.
type ToolConfig struct {
	SnapshotPath     string `mapstructure:"snapshot_path"`
	OutputFormat     string `mapstructure:"output_format"`
	SchemaValidation bool   `mapstructure:"schema_validation"`
	Verbose          bool   `mapstructure:"verbose"`
}

// LoadToolConfig loads tool configuration using Viper.
func LoadToolConfig() (*ToolConfig, error) {
	viper.SetConfigName("patina-readiness")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.patina")
	viper.AddConfigPath("/etc/patina")

	// Defaults
	viper.SetDefault("snapshot_path", "capture.json")
	viper.SetDefault("output_format", "table")
	viper.SetDefault("schema_validation", true)
	viper.SetDefault("verbose", false)

	// Allow environment variables
	viper.SetEnvPrefix("PATINA")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config ToolConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
