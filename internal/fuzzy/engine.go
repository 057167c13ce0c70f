package fuzzy

import (
	"errors"
	"fmt"
)

type State int

const (
	StateUninitialized State = iota
	StateConfigured
	StateReady
	StateEvaluated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConfigured:
		return "configured"
	case StateReady:
		return "ready"
	case StateEvaluated:
		return "evaluated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Engine runs fuzzification, min-max rule evaluation and centroid
// defuzzification over a fixed set of variables and rules.
//
// An Engine is not safe for concurrent use, callers have to serialize cycles.
type Engine struct {
	definition Definition
	inputs     []Variable
	outputs    []Variable
	ruleBase   RuleBase
	strengths  []int

	state       State
	cycle       uint64
	diagnostics []Diagnostic
}

// NewEngineFromSource builds an engine from the definition provided by source.
func NewEngineFromSource(source Source) (*Engine, error) {
	def, err := source.Definition()
	if err != nil {
		return nil, err
	}
	return NewEngine(def)
}

// NewEngine validates the definition, resolves all rules and returns
// a configured engine. Every configuration problem is reported.
func NewEngine(def Definition) (*Engine, error) {
	var errs []error
	if len(def.Inputs) <= 0 {
		errs = append(errs, newConfigurationError("definition", "no input variables defined"))
	}
	if len(def.Outputs) <= 0 {
		errs = append(errs, newConfigurationError("definition", "no output variables defined"))
	}

	names := map[string]bool{}
	inputs := make([]Variable, 0, len(def.Inputs))
	outputs := make([]Variable, 0, len(def.Outputs))
	for _, group := range []struct {
		role        Role
		definitions []VariableDefinition
		target      *[]Variable
	}{
		{RoleInput, def.Inputs, &inputs},
		{RoleOutput, def.Outputs, &outputs},
	} {
		for _, vd := range group.definitions {
			if names[vd.Name] {
				errs = append(errs, newConfigurationError(fmt.Sprintf("variable %s", vd.Name), "duplicate variable name"))
				continue
			}
			names[vd.Name] = true

			v, err := newVariable(vd, group.role)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			*group.target = append(*group.target, v)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	rb, err := newRuleBase(def.Rules, inputs, outputs)
	if err != nil {
		return nil, err
	}

	return &Engine{
		definition: def,
		inputs:     inputs,
		outputs:    outputs,
		ruleBase:   rb,
		strengths:  make([]int, len(rb.Rules)),
		state:      StateConfigured,
	}, nil
}

// Definition returns the definition the engine was built from
func (e *Engine) Definition() Definition {
	return e.definition
}

func (e *Engine) State() State {
	return e.state
}

// Inputs returns the input variables, the returned slice must not be modified.
func (e *Engine) Inputs() []Variable {
	return e.inputs
}

// Outputs returns the output variables, the returned slice must not be modified.
func (e *Engine) Outputs() []Variable {
	return e.outputs
}

func (e *Engine) Rules() RuleBase {
	return e.ruleBase
}

// Output returns the current value of the named output variable.
// ok is false if the variable does not exist or has not been written
// since the last reset.
func (e *Engine) Output(name string) (value int, ok bool) {
	for _, o := range e.outputs {
		if o.Name == name {
			return o.Value, o.Valid
		}
	}
	return 0, false
}

// Reset clears all transient state: every degree is set to 0
// and output values become invalid.
func (e *Engine) Reset() {
	if e.state == StateUninitialized {
		return
	}
	for i := range e.inputs {
		e.inputs[i].reset()
	}
	for i := range e.outputs {
		e.outputs[i].reset()
	}
	for i := range e.strengths {
		e.strengths[i] = 0
	}
	e.diagnostics = e.diagnostics[:0]
	e.state = StateReady
}

func (e *Engine) SetInput(name string, value int) error {
	if e.state == StateUninitialized {
		return ErrNotConfigured
	}
	for i := range e.inputs {
		if e.inputs[i].Name == name {
			e.inputs[i].Value = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
}

// SetInputs sets the value of every input variable.
// Nothing is modified if a value is missing or a name is unknown.
func (e *Engine) SetInputs(values map[string]int) error {
	if e.state == StateUninitialized {
		return ErrNotConfigured
	}
	for name := range values {
		if !e.hasInput(name) {
			return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
		}
	}
	for _, v := range e.inputs {
		if _, ok := values[v.Name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingInput, v.Name)
		}
	}

	for i := range e.inputs {
		e.inputs[i].Value = values[e.inputs[i].Name]
	}
	return nil
}

// SetInputValues sets the input variables in the order they were defined.
func (e *Engine) SetInputValues(values []int) error {
	if e.state == StateUninitialized {
		return ErrNotConfigured
	}
	if len(values) != len(e.inputs) {
		return fmt.Errorf("%w: expected %d, got %d", ErrInputCount, len(e.inputs), len(values))
	}
	for i := range e.inputs {
		e.inputs[i].Value = values[i]
	}
	return nil
}

func (e *Engine) hasInput(name string) bool {
	for _, v := range e.inputs {
		if v.Name == name {
			return true
		}
	}
	return false
}

// Fuzzify computes the degree of every input membership function.
func (e *Engine) Fuzzify() {
	for i := range e.inputs {
		e.inputs[i].fuzzify()
	}
}

// EvaluateRules applies min-max inference. The degrees of all output
// membership functions have to be 0 beforehand (see Reset).
// matched is false if no rule fired with a strength > 0.
func (e *Engine) EvaluateRules() (matched bool) {
	for r, rule := range e.ruleBase.Rules {
		strength := UpperLimit
		for _, ref := range rule.Antecedents {
			strength = min(strength, e.inputs[ref.Variable].MembershipFunctions[ref.Term].Degree)
		}
		e.strengths[r] = strength

		for _, ref := range rule.Consequents {
			mf := &e.outputs[ref.Variable].MembershipFunctions[ref.Term]
			mf.Degree = max(mf.Degree, strength)
		}
		if strength > 0 {
			matched = true
		}
	}

	if !matched {
		e.diagnostics = append(e.diagnostics, Diagnostic{
			Kind:    DiagnosticNoMatch,
			Message: "no matching rules found",
		})
	}
	return matched
}

// Defuzzify computes the crisp value of every output variable.
func (e *Engine) Defuzzify() {
	for i := range e.outputs {
		o := &e.outputs[i]
		sumOfProducts, sumOfAreas, ok := o.defuzzify()
		if !ok {
			e.diagnostics = append(e.diagnostics, Diagnostic{
				Kind:          DiagnosticZeroArea,
				Variable:      o.Name,
				Message:       fmt.Sprintf("sum of areas of %s is %d, defaulting to 0", o.Name, sumOfAreas),
				SumOfProducts: sumOfProducts,
				SumOfAreas:    sumOfAreas,
			})
		}
	}
	e.state = StateEvaluated
}

// Evaluate runs one complete cycle for the given named inputs.
func (e *Engine) Evaluate(inputs map[string]int) (Result, error) {
	if e.state == StateUninitialized {
		return Result{}, ErrNotConfigured
	}
	// validate before touching any state
	for name := range inputs {
		if !e.hasInput(name) {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
		}
	}
	for _, v := range e.inputs {
		if _, ok := inputs[v.Name]; !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingInput, v.Name)
		}
	}

	e.Reset()
	_ = e.SetInputs(inputs)
	return e.run(), nil
}

// EvaluateValues runs one complete cycle for positional inputs.
func (e *Engine) EvaluateValues(values []int) (Result, error) {
	if e.state == StateUninitialized {
		return Result{}, ErrNotConfigured
	}
	if len(values) != len(e.inputs) {
		return Result{}, fmt.Errorf("%w: expected %d, got %d", ErrInputCount, len(e.inputs), len(values))
	}

	e.Reset()
	_ = e.SetInputValues(values)
	return e.run(), nil
}

func (e *Engine) run() Result {
	e.Fuzzify()
	e.EvaluateRules()
	e.Defuzzify()
	e.cycle++
	return e.Snapshot()
}

// Snapshot copies the current engine state.
func (e *Engine) Snapshot() Result {
	result := Result{
		Cycle:       e.cycle,
		Inputs:      make([]VariableSnapshot, 0, len(e.inputs)),
		Outputs:     make([]VariableSnapshot, 0, len(e.outputs)),
		Rules:       make([]RuleFiring, 0, len(e.ruleBase.Rules)),
		Diagnostics: append([]Diagnostic(nil), e.diagnostics...),
	}
	for _, v := range e.inputs {
		result.Inputs = append(result.Inputs, snapshotVariable(v))
	}
	for _, v := range e.outputs {
		result.Outputs = append(result.Outputs, snapshotVariable(v))
	}
	for r, rule := range e.ruleBase.Rules {
		firing := RuleFiring{
			Index:       r,
			Strength:    e.strengths[r],
			Antecedents: make([]int, len(rule.Antecedents)),
			Consequents: make([]int, len(rule.Consequents)),
		}
		for i, ref := range rule.Antecedents {
			firing.Antecedents[i] = e.inputs[ref.Variable].MembershipFunctions[ref.Term].Degree
		}
		for i, ref := range rule.Consequents {
			firing.Consequents[i] = e.outputs[ref.Variable].MembershipFunctions[ref.Term].Degree
		}
		result.Rules = append(result.Rules, firing)
	}
	return result
}
