package history

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/fuzzy2go/cmd/global"
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/persistence"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/markusressel/fuzzy2go/internal/util"
	"github.com/spf13/cobra"
)

var (
	systemId     string
	limit        int
	clearHistory bool
)

var Command = &cobra.Command{
	Use:   "history",
	Short: "Print the recorded cycles of a system",
	Long: `Prints the most recent cycles recorded by the daemon.
Without a system id the systems with a recorded history are listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath, configuration.CurrentConfig.HistorySize)

		if len(systemId) <= 0 {
			ids, err := pers.SystemIds()
			if err != nil {
				return err
			}
			for _, id := range ids {
				ui.Printfln("%s", id)
			}
			return nil
		}

		if clearHistory {
			if err := pers.DeleteRecords(systemId); err != nil {
				return err
			}
			ui.Success("Deleted history of system %s", systemId)
			return nil
		}

		records, err := pers.LoadRecords(systemId, limit)
		if errors.Is(err, os.ErrNotExist) {
			ui.Warning("No history recorded for system %s", systemId)
			return nil
		}
		if err != nil {
			return err
		}

		tab, err := ui.FormatTable(recordTable(records))
		if err != nil {
			return err
		}
		ui.Printfln("%s", tab)

		for name, values := range outputSeries(records) {
			if len(values) <= 1 {
				continue
			}
			ui.Printfln("%s", asciigraph.Plot(values, asciigraph.Height(10), asciigraph.Width(100), asciigraph.Caption(name)))
		}
		return nil
	},
}

// recordTable lists one record per row, variables in alphabetical order
func recordTable(records []persistence.Record) ([]string, [][]string, bool) {
	if len(records) <= 0 {
		return []string{"Time", "Cycle"}, nil, !global.NoColor
	}
	inputNames := util.SortedKeys(records[len(records)-1].Inputs)
	outputNames := util.SortedKeys(records[len(records)-1].Outputs)

	headers := []string{"Time", "Cycle"}
	headers = append(headers, inputNames...)
	headers = append(headers, outputNames...)
	headers = append(headers, "Diagnostics")

	var rows [][]string
	for _, record := range records {
		row := []string{record.Time.Format("2006-01-02 15:04:05.000"), strconv.FormatUint(record.Cycle, 10)}
		for _, name := range inputNames {
			row = append(row, strconv.Itoa(record.Inputs[name]))
		}
		for _, name := range outputNames {
			value, ok := record.Outputs[name]
			if ok {
				row = append(row, strconv.Itoa(value))
			} else {
				row = append(row, "N/A")
			}
		}
		row = append(row, fmt.Sprintf("%d", len(record.Diagnostics)))
		rows = append(rows, row)
	}
	return headers, rows, !global.NoColor
}

// outputSeries collects the values of every output variable over all records,
// cycles without a value for an output are skipped
func outputSeries(records []persistence.Record) map[string][]float64 {
	series := map[string][]float64{}
	for _, record := range records {
		for name, value := range record.Outputs {
			series[name] = append(series[name], float64(value))
		}
	}
	return series
}

func init() {
	Command.Flags().StringVarP(&systemId, "id", "i", "", "System ID as specified in the config")
	Command.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records, 0 prints all")
	Command.Flags().BoolVarP(&clearHistory, "clear", "", false, "Delete the history of the system")
}
