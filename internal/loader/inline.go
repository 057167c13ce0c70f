package loader

import (
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
)

// InlineSource provides the terms and rules written directly into a system configuration
type InlineSource struct {
	Config configuration.SystemConfig
}

func (s InlineSource) Definition() (fuzzy.Definition, error) {
	var definition fuzzy.Definition
	for _, input := range s.Config.Inputs {
		definition.Inputs = append(definition.Inputs, variableDefinition(input.Name, input.Terms))
	}
	for _, output := range s.Config.Outputs {
		definition.Outputs = append(definition.Outputs, variableDefinition(output.Name, output.Terms))
	}
	for _, rule := range s.Config.Rules {
		definition.Rules = append(definition.Rules, fuzzy.RuleDefinition{
			Antecedents: rule.If,
			Consequents: rule.Then,
		})
	}
	return definition, nil
}

func variableDefinition(name string, terms []configuration.TermConfig) fuzzy.VariableDefinition {
	variable := fuzzy.VariableDefinition{Name: name}
	for _, term := range terms {
		variable.Terms = append(variable.Terms, fuzzy.TermDefinition{
			Name:   term.Name,
			Points: term.Points,
		})
	}
	return variable
}
