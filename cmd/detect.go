package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/markusressel/fuzzy2go/cmd/global"
	"github.com/markusressel/fuzzy2go/internal/hwmon"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect temperature sensors",
	Long:  `Detects all hwmon temperature inputs that can be used as sensors and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		controllers := hwmon.GetChips()

		for _, controller := range controllers {
			if len(controller.Name) <= 0 || len(controller.Sensors) <= 0 {
				continue
			}

			ui.Printfln("> %s (platform: %s)", controller.Name, controller.Platform)

			var rows [][]string
			for _, sensor := range controller.Sensors {
				_, file := filepath.Split(sensor.Input)
				rows = append(rows, []string{
					"", strconv.Itoa(sensor.Index), fmt.Sprintf("%s (%s)", sensor.Label, file), strconv.FormatFloat(sensor.Value, 'f', -1, 64),
				})
			}

			tab, err := ui.FormatTable([]string{"Sensors", "Index", "Label", "Value"}, rows, !global.NoColor)
			if err != nil {
				ui.Fatal("Error printing table: %v", err)
			}
			ui.Printfln("%s", tab)
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
