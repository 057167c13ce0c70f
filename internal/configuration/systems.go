package configuration

type SystemConfig struct {
	ID string `json:"id" yaml:"id"`
	// Enabled systems are run by the daemon, defaults to true
	Enabled DefaultTrueBool `json:"-" yaml:"-"`

	// Builtin selects a compiled-in definition
	Builtin string `json:"builtin,omitempty" yaml:"builtin,omitempty"`
	// Legacy reads the definition from plain text files
	Legacy *LegacyDefinitionConfig `json:"legacy,omitempty" yaml:"legacy,omitempty"`

	Inputs  []InputConfig  `json:"inputs" yaml:"inputs"`
	Outputs []OutputConfig `json:"outputs" yaml:"outputs"`
	// Rules of an inline definition
	Rules []RuleConfig `json:"rules,omitempty" yaml:"rules,omitempty"`
}

type InputConfig struct {
	Name   string       `json:"name" yaml:"name"`
	Sensor string       `json:"sensor,omitempty" yaml:"sensor,omitempty"`
	Terms  []TermConfig `json:"terms,omitempty" yaml:"terms,omitempty"`
}

type OutputConfig struct {
	Name      string       `json:"name" yaml:"name"`
	Actuators []string     `json:"actuators,omitempty" yaml:"actuators,omitempty"`
	Terms     []TermConfig `json:"terms,omitempty" yaml:"terms,omitempty"`
}

type TermConfig struct {
	Name   string       `json:"name" yaml:"name"`
	Points PointsConfig `json:"points" yaml:"points,flow"`
}

// PointsConfig holds left foot, left shoulder, right shoulder and right foot
type PointsConfig [4]int

type RuleConfig struct {
	If   []string `json:"if" yaml:"if,flow" mapstructure:"if"`
	Then []string `json:"then" yaml:"then,flow" mapstructure:"then"`
}

type LegacyDefinitionConfig struct {
	// Inputs and Outputs are files with one variable each
	Inputs  []string `json:"inputs" yaml:"inputs"`
	Outputs []string `json:"outputs" yaml:"outputs"`
	Rules   string   `json:"rules" yaml:"rules"`
}

// IsInline is true if terms and rules are defined in the configuration itself
func (c SystemConfig) IsInline() bool {
	return len(c.Builtin) <= 0 && c.Legacy == nil
}

// Kind names the definition source: builtin, legacy or inline
func (c SystemConfig) Kind() string {
	switch {
	case len(c.Builtin) > 0:
		return "builtin"
	case c.Legacy != nil:
		return "legacy"
	default:
		return "inline"
	}
}

func (c SystemConfig) FindInput(name string) (InputConfig, bool) {
	for _, input := range c.Inputs {
		if input.Name == name {
			return input, true
		}
	}
	return InputConfig{}, false
}

func (c SystemConfig) FindOutput(name string) (OutputConfig, bool) {
	for _, output := range c.Outputs {
		if output.Name == name {
			return output, true
		}
	}
	return OutputConfig{}, false
}

// GetSystemConfig returns the system with the given id
func GetSystemConfig(id string, systems []SystemConfig) (*SystemConfig, error) {
	var available []string
	for _, system := range systems {
		available = append(available, system.ID)
		if system.ID == id {
			s := system
			return &s, nil
		}
	}
	return nil, &NotFoundError{Kind: "system", ID: id, Available: available}
}
