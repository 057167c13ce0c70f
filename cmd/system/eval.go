package system

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/markusressel/fuzzy2go/cmd/global"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:     "eval NAME=VALUE...",
	Short:   "Run a single inference cycle with the given input values",
	Example: "fuzzy2go system eval -i pendulum Angle=60 Velocity=125",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(systemId) <= 0 {
			return errors.New("missing system id, use -i")
		}
		inputs, err := parseInputs(args)
		if err != nil {
			return err
		}

		loadConfig()
		system, err := loadSystem(systemId)
		if err != nil {
			return err
		}

		result, err := system.Simulate(inputs)
		if err != nil {
			return err
		}
		return printResult(result, system.Definition())
	},
}

// parseInputs parses "Name=Value" arguments
func parseInputs(args []string) (map[string]int, error) {
	inputs := map[string]int{}
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !found || len(name) <= 0 {
			return nil, fmt.Errorf("invalid input '%s', expected NAME=VALUE", arg)
		}
		if _, exists := inputs[name]; exists {
			return nil, fmt.Errorf("input %s is given more than once", name)
		}
		number, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid value of input %s: %w", name, err)
		}
		inputs[name] = number
	}
	return inputs, nil
}

func printResult(result fuzzy.Result, definition fuzzy.Definition) error {
	for _, variables := range [][]fuzzy.VariableSnapshot{result.Inputs, result.Outputs} {
		for _, variable := range variables {
			var rows [][]string
			for _, term := range variable.Terms {
				rows = append(rows, []string{term, strconv.Itoa(variable.Degrees[term])})
			}
			tab, err := ui.FormatTable([]string{variable.Name, "Degree"}, rows, !global.NoColor)
			if err != nil {
				return err
			}
			ui.Printfln("%s", tab)
		}
	}

	var ruleRows [][]string
	for _, firing := range result.Rules {
		if firing.Strength <= 0 {
			continue
		}
		text := ""
		if firing.Index < len(definition.Rules) {
			text = definition.Rules[firing.Index].String()
		}
		ruleRows = append(ruleRows, []string{strconv.Itoa(firing.Index + 1), text, strconv.Itoa(firing.Strength)})
	}
	if len(ruleRows) > 0 {
		tab, err := ui.FormatTable([]string{"#", "Rule", "Strength"}, ruleRows, !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tab)
	}

	var outputRows [][]string
	for _, output := range result.Outputs {
		value := "N/A"
		if output.Valid {
			value = strconv.Itoa(output.Value)
		}
		outputRows = append(outputRows, []string{output.Name, value})
	}
	tab, err := ui.FormatTable([]string{"Output", "Value"}, outputRows, !global.NoColor)
	if err != nil {
		return err
	}
	ui.Printfln("%s", tab)

	for _, diagnostic := range result.Diagnostics {
		ui.Warning("%s", diagnostic.Message)
	}
	return nil
}

func init() {
	Command.AddCommand(evalCmd)
}
