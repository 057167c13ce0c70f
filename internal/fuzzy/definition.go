package fuzzy

// TermDefinition describes one membership function by its four control points:
// left foot, left shoulder, right shoulder, right foot.
type TermDefinition struct {
	Name   string `json:"name" yaml:"name"`
	Points [4]int `json:"points" yaml:"points"`
}

type VariableDefinition struct {
	Name  string           `json:"name" yaml:"name"`
	Terms []TermDefinition `json:"terms" yaml:"terms"`
}

// RuleDefinition references membership functions by name.
// Antecedent i belongs to input variable i, consequent j to output variable j.
type RuleDefinition struct {
	Antecedents []string `json:"if" yaml:"if"`
	Consequents []string `json:"then" yaml:"then"`
}

// Definition is everything needed to construct an Engine.
type Definition struct {
	Inputs  []VariableDefinition `json:"inputs" yaml:"inputs"`
	Outputs []VariableDefinition `json:"outputs" yaml:"outputs"`
	Rules   []RuleDefinition     `json:"rules" yaml:"rules"`
}

// Source provides a Definition, e.g. from a compiled-in table or a set of files.
type Source interface {
	Definition() (Definition, error)
}
