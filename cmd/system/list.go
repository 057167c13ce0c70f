package system

import (
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/fuzzy2go/cmd/global"
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the variables, terms and rules of the configured system(s)",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()

		for idx, systemConfig := range configuration.CurrentConfig.Systems {
			if len(systemId) > 0 && systemConfig.ID != systemId {
				continue
			}
			if idx > 0 {
				ui.Printfln("")
			}

			system, err := loadSystem(systemConfig.ID)
			if err != nil {
				return err
			}
			definition := system.Definition()

			tab, err := ui.FormatTable(
				[]string{"ID", "Kind", "Enabled", "Inputs", "Outputs", "Rules"},
				[][]string{{
					system.GetId(),
					systemConfig.Kind(),
					strconv.FormatBool(systemConfig.Enabled.Get()),
					strconv.Itoa(len(definition.Inputs)),
					strconv.Itoa(len(definition.Outputs)),
					strconv.Itoa(len(definition.Rules)),
				}},
				!global.NoColor,
			)
			if err != nil {
				return err
			}
			ui.Printfln("%s", tab)

			inputs, outputs := system.Variables()
			for _, variables := range [][]fuzzy.Variable{inputs, outputs} {
				for _, variable := range variables {
					if err := printVariable(variable, definition); err != nil {
						return err
					}
				}
			}

			var ruleRows [][]string
			for i, rule := range definition.Rules {
				ruleRows = append(ruleRows, []string{strconv.Itoa(i + 1), rule.String()})
			}
			tab, err = ui.FormatTable([]string{"#", "Rule"}, ruleRows, !global.NoColor)
			if err != nil {
				return err
			}
			ui.Printfln("%s", tab)
		}

		return nil
	},
}

func printVariable(variable fuzzy.Variable, definition fuzzy.Definition) error {
	points := termPoints(definition, variable.Name)

	var rows [][]string
	for _, mf := range variable.MembershipFunctions {
		p := points[mf.Name]
		rows = append(rows, []string{
			mf.Name,
			fmt.Sprintf("%d %d %d %d", p[0], p[1], p[2], p[3]),
			strconv.Itoa(mf.Slope1),
			strconv.Itoa(mf.Slope2),
			strconv.Itoa(mf.Centroid()),
		})
	}
	tab, err := ui.FormatTable(
		[]string{fmt.Sprintf("%s (%s)", variable.Name, variable.Role), "Points", "Slope 1", "Slope 2", "Centroid"},
		rows,
		!global.NoColor,
	)
	if err != nil {
		return err
	}
	ui.Printfln("%s", tab)
	ui.Printfln("%s", plotMembershipFunctions(variable))
	return nil
}

// termPoints returns the control points of all terms of a variable by term name
func termPoints(definition fuzzy.Definition, name string) map[string][4]int {
	points := map[string][4]int{}
	for _, variables := range [][]fuzzy.VariableDefinition{definition.Inputs, definition.Outputs} {
		for _, variable := range variables {
			if variable.Name != name {
				continue
			}
			for _, term := range variable.Terms {
				points[term.Name] = term.Points
			}
		}
	}
	return points
}

// plotMembershipFunctions draws the degree of every term over the value axis
func plotMembershipFunctions(variable fuzzy.Variable) string {
	var series [][]float64
	for _, mf := range variable.MembershipFunctions {
		degrees := make([]float64, fuzzy.UpperLimit+1)
		for x := range degrees {
			degrees[x] = float64(mf.DegreeAt(x))
		}
		series = append(series, degrees)
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(10),
		asciigraph.Width(100),
		asciigraph.Caption(variable.Name),
	)
}

func init() {
	Command.AddCommand(listCmd)
}
