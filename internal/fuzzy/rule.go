package fuzzy

import (
	"errors"
	"fmt"
	"strings"
)

// TermRef addresses a membership function by the index of its variable
// and its index within that variable.
type TermRef struct {
	Variable int `json:"variable"`
	Term     int `json:"term"`
}

// Rule is a conjunction of antecedents concluding one term per output variable.
type Rule struct {
	Antecedents []TermRef `json:"antecedents"`
	Consequents []TermRef `json:"consequents"`
}

// NoConclusion can be used as a consequent name to leave
// the corresponding output variable untouched by a rule.
const NoConclusion = "-"

type RuleBase struct {
	Rules []Rule `json:"rules"`
}

// newRuleBase resolves every rule definition against the given variables.
// All resolution errors are collected.
func newRuleBase(definitions []RuleDefinition, inputs []Variable, outputs []Variable) (RuleBase, error) {
	if len(definitions) <= 0 {
		return RuleBase{}, newConfigurationError("rule base", "no rules defined")
	}

	var errs []error
	rb := RuleBase{Rules: make([]Rule, 0, len(definitions))}
	for i, def := range definitions {
		rule, err := resolveRule(i, def, inputs, outputs)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rb.Rules = append(rb.Rules, rule)
	}

	if len(errs) > 0 {
		return RuleBase{}, errors.Join(errs...)
	}
	return rb, nil
}

func resolveRule(index int, def RuleDefinition, inputs []Variable, outputs []Variable) (Rule, error) {
	item := fmt.Sprintf("rule #%d (%s)", index+1, def)
	if len(def.Antecedents) != len(inputs) {
		return Rule{}, newConfigurationError(item, fmt.Sprintf("expected %d antecedents, got %d", len(inputs), len(def.Antecedents)))
	}
	if len(def.Consequents) != len(outputs) {
		return Rule{}, newConfigurationError(item, fmt.Sprintf("expected %d consequents, got %d", len(outputs), len(def.Consequents)))
	}

	rule := Rule{
		Antecedents: make([]TermRef, len(def.Antecedents)),
		Consequents: make([]TermRef, 0, len(def.Consequents)),
	}
	for i, name := range def.Antecedents {
		term, ok := inputs[i].Term(name)
		if !ok {
			return Rule{}, newConfigurationError(item, fmt.Sprintf("unknown membership function '%s' for input %s", name, inputs[i].Name))
		}
		rule.Antecedents[i] = TermRef{Variable: i, Term: term}
	}
	for i, name := range def.Consequents {
		if name == NoConclusion {
			continue
		}
		term, ok := outputs[i].Term(name)
		if !ok {
			return Rule{}, newConfigurationError(item, fmt.Sprintf("unknown membership function '%s' for output %s", name, outputs[i].Name))
		}
		rule.Consequents = append(rule.Consequents, TermRef{Variable: i, Term: term})
	}
	if len(rule.Consequents) <= 0 {
		return Rule{}, newConfigurationError(item, "no consequent")
	}

	return rule, nil
}

func (d RuleDefinition) String() string {
	return strings.Join(d.Antecedents, " ") + " -> " + strings.Join(d.Consequents, " ")
}
