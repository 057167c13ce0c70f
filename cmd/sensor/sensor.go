package sensor

import (
	"fmt"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/sensors"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	sensorId   string
	normalized bool
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current value of a sensor",
	Long:             `Prints the raw value of a sensor, or its value on the normalized axis of the engine with --normalized`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		if normalized {
			fmt.Printf("%d", sensors.Normalize(sensor.GetConfig(), value))
		} else {
			fmt.Printf("%v", value)
		}
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
	Command.Flags().BoolVarP(&normalized, "normalized", "n", false, "Print the normalized value")
}

func getSensor(id string) (sensors.Sensor, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.Fatal("%v", err)
	}

	var available []string
	for _, config := range configuration.CurrentConfig.Sensors {
		available = append(available, config.ID)
		if config.ID == id {
			return sensors.NewSensor(config)
		}
	}

	return nil, &configuration.NotFoundError{Kind: "sensor", ID: id, Available: available}
}
