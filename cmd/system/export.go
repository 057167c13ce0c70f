package system

import (
	"errors"

	"github.com/markusressel/fuzzy2go/internal/loader"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/spf13/cobra"
)

var outputPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the definition of a system as an inline YAML configuration",
	Long: `Exports the terms and rules of a system, no matter if it is builtin,
read from legacy files or defined inline. Without an output file the
result is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(systemId) <= 0 {
			return errors.New("missing system id, use -i")
		}

		loadConfig()
		system, err := loadSystem(systemId)
		if err != nil {
			return err
		}

		if len(outputPath) <= 0 {
			data, err := loader.MarshalSystemConfig(loader.EncodeSystemConfig(system.GetConfig(), system.Definition()))
			if err != nil {
				return err
			}
			ui.Printf("%s", string(data))
			return nil
		}

		if err := loader.WriteDefinition(outputPath, system.GetConfig(), system.Definition()); err != nil {
			return err
		}
		ui.Success("Exported system %s to %s", systemId, outputPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file")
	Command.AddCommand(exportCmd)
}
