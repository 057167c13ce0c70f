package loader

import (
	"fmt"

	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/util"
)

const BuiltinInvertedPendulum = "inverted-pendulum"

var builtins = map[string]func() fuzzy.Definition{
	BuiltinInvertedPendulum: invertedPendulum,
}

// BuiltinSource provides one of the compiled-in definitions
type BuiltinSource struct {
	Name string
}

func (s BuiltinSource) Definition() (fuzzy.Definition, error) {
	create, ok := builtins[s.Name]
	if !ok {
		return fuzzy.Definition{}, fmt.Errorf("unknown builtin definition '%s', available: %v", s.Name, BuiltinNames())
	}
	return create(), nil
}

func BuiltinNames() []string {
	return util.SortedKeys(builtins)
}

var (
	sevenTermNames  = []string{"NL", "NM", "NS", "ZE", "PS", "PM", "PL"}
	sevenTermPoints = [][4]int{
		{0, 31, 31, 63},
		{31, 63, 63, 95},
		{63, 95, 95, 127},
		{95, 127, 127, 159},
		{127, 159, 159, 191},
		{159, 191, 191, 223},
		{191, 223, 223, 255},
	}
)

func sevenTermVariable(name string) fuzzy.VariableDefinition {
	variable := fuzzy.VariableDefinition{Name: name}
	for i, term := range sevenTermNames {
		variable.Terms = append(variable.Terms, fuzzy.TermDefinition{Name: term, Points: sevenTermPoints[i]})
	}
	return variable
}

// invertedPendulum balances a pole by the angle and the angular velocity
// of the pole, 127 is upright and at rest.
func invertedPendulum() fuzzy.Definition {
	rules := [][3]string{
		{"NL", "ZE", "PL"},
		{"ZE", "NL", "PL"},
		{"NM", "ZE", "PM"},
		{"ZE", "NM", "PM"},
		{"NS", "ZE", "PS"},
		{"ZE", "NS", "PS"},
		{"NS", "PS", "PS"},
		{"ZE", "ZE", "ZE"},
		{"ZE", "PS", "NS"},
		{"PS", "ZE", "NS"},
		{"PS", "NS", "NS"},
		{"ZE", "PM", "NM"},
		{"NM", "ZE", "NM"},
		{"ZE", "PL", "NL"},
		{"PL", "ZE", "NL"},
	}

	definition := fuzzy.Definition{
		Inputs: []fuzzy.VariableDefinition{
			sevenTermVariable("Angle"),
			sevenTermVariable("Velocity"),
		},
		Outputs: []fuzzy.VariableDefinition{
			sevenTermVariable("Force"),
		},
	}
	for _, rule := range rules {
		definition.Rules = append(definition.Rules, fuzzy.RuleDefinition{
			Antecedents: []string{rule[0], rule[1]},
			Consequents: []string{rule[2]},
		})
	}
	return definition
}
