package config

import (
	"os"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/loader"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long:  `Validates the configuration file and loads the definition of every system`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		if err := configuration.Validate(configPath); err != nil {
			ui.Error("Validation failed: %v", err)
			os.Exit(1)
		}

		failed := false
		for _, systemConfig := range configuration.CurrentConfig.Systems {
			if _, err := loader.LoadEngine(systemConfig); err != nil {
				ui.Error("Validation failed: %v", err)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}

		ui.Success("Config looks good! :)")
		return nil
	},
}

func init() {
	Command.AddCommand(validateCmd)
}
