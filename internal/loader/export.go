package loader

import (
	"fmt"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/util"
	"gopkg.in/yaml.v3"
)

// EncodeSystemConfig turns a definition into an inline system configuration,
// keeping the sensor and actuator bindings of base.
func EncodeSystemConfig(base configuration.SystemConfig, definition fuzzy.Definition) configuration.SystemConfig {
	result := configuration.SystemConfig{ID: base.ID}

	for _, variable := range definition.Inputs {
		input, _ := base.FindInput(variable.Name)
		input.Name = variable.Name
		input.Terms = termConfigs(variable)
		result.Inputs = append(result.Inputs, input)
	}
	for _, variable := range definition.Outputs {
		output, _ := base.FindOutput(variable.Name)
		output.Name = variable.Name
		output.Terms = termConfigs(variable)
		result.Outputs = append(result.Outputs, output)
	}
	for _, rule := range definition.Rules {
		result.Rules = append(result.Rules, configuration.RuleConfig{
			If:   rule.Antecedents,
			Then: rule.Consequents,
		})
	}

	return result
}

func termConfigs(variable fuzzy.VariableDefinition) []configuration.TermConfig {
	var result []configuration.TermConfig
	for _, term := range variable.Terms {
		result = append(result, configuration.TermConfig{
			Name:   term.Name,
			Points: term.Points,
		})
	}
	return result
}

// MarshalSystemConfig encodes the system as a single element "systems" list,
// ready to be pasted into a configuration file.
func MarshalSystemConfig(config configuration.SystemConfig) ([]byte, error) {
	document := struct {
		Systems []configuration.SystemConfig `yaml:"systems"`
	}{
		Systems: []configuration.SystemConfig{config},
	}
	data, err := yaml.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("system %s: %w", config.ID, err)
	}
	return data, nil
}

// WriteDefinition exports the definition of the given system as YAML to path
func WriteDefinition(path string, base configuration.SystemConfig, definition fuzzy.Definition) error {
	data, err := MarshalSystemConfig(EncodeSystemConfig(base, definition))
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data)
}
