package loader

import (
	"fmt"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
)

// NewSource selects the definition source of a system configuration
func NewSource(config configuration.SystemConfig) (fuzzy.Source, error) {
	switch {
	case len(config.Builtin) > 0:
		if _, ok := builtins[config.Builtin]; !ok {
			return nil, fmt.Errorf("system %s: unknown builtin definition '%s', available: %v", config.ID, config.Builtin, BuiltinNames())
		}
		return BuiltinSource{Name: config.Builtin}, nil
	case config.Legacy != nil:
		return LegacySource{
			Inputs:  config.Legacy.Inputs,
			Outputs: config.Legacy.Outputs,
			Rules:   config.Legacy.Rules,
		}, nil
	case len(config.Rules) > 0:
		return InlineSource{Config: config}, nil
	default:
		return nil, fmt.Errorf("system %s: definition is missing, use one of: builtin | legacy | rules", config.ID)
	}
}

// LoadEngine creates the engine of a system configuration.
// Variables bound to sensors or actuators have to exist in the definition.
func LoadEngine(config configuration.SystemConfig) (*fuzzy.Engine, error) {
	source, err := NewSource(config)
	if err != nil {
		return nil, err
	}
	engine, err := fuzzy.NewEngineFromSource(source)
	if err != nil {
		return nil, fmt.Errorf("system %s: %w", config.ID, err)
	}

	for _, input := range config.Inputs {
		if !hasVariable(engine.Inputs(), input.Name) {
			return nil, fmt.Errorf("system %s: %w: %s", config.ID, fuzzy.ErrUnknownVariable, input.Name)
		}
	}
	for _, output := range config.Outputs {
		if !hasVariable(engine.Outputs(), output.Name) {
			return nil, fmt.Errorf("system %s: unknown output variable: %s", config.ID, output.Name)
		}
	}

	return engine, nil
}

func hasVariable(variables []fuzzy.Variable, name string) bool {
	for _, variable := range variables {
		if variable.Name == name {
			return true
		}
	}
	return false
}
