package system

import (
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/loader"
	"github.com/markusressel/fuzzy2go/internal/systems"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/spf13/cobra"
)

var systemId string

var Command = &cobra.Command{
	Use:              "system",
	Short:            "System related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&systemId,
		"id", "i",
		"",
		"System ID as specified in the config",
	)
}

func loadConfig() {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.Fatal("%v", err)
	}
}

// loadSystem creates a system without registering it
func loadSystem(id string) (*systems.System, error) {
	config, err := configuration.GetSystemConfig(id, configuration.CurrentConfig.Systems)
	if err != nil {
		return nil, err
	}
	engine, err := loader.LoadEngine(*config)
	if err != nil {
		return nil, err
	}
	return systems.NewSystem(*config, engine), nil
}
