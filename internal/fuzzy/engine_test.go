package fuzzy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	pendulumTerms  = []string{"NL", "NM", "NS", "ZE", "PS", "PM", "PL"}
	pendulumPoints = [][4]int{
		{0, 31, 31, 63},
		{31, 63, 63, 95},
		{63, 95, 95, 127},
		{95, 127, 127, 159},
		{127, 159, 159, 191},
		{159, 191, 191, 223},
		{191, 223, 223, 255},
	}
	pendulumRules = [][3]string{
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
)

func pendulumVariable(name string) VariableDefinition {
	v := VariableDefinition{Name: name}
	for i, term := range pendulumTerms {
		v.Terms = append(v.Terms, TermDefinition{Name: term, Points: pendulumPoints[i]})
	}
	return v
}

func pendulumDefinition() Definition {
	def := Definition{
		Inputs:  []VariableDefinition{pendulumVariable("Angle"), pendulumVariable("Velocity")},
		Outputs: []VariableDefinition{pendulumVariable("Force")},
	}
	for _, r := range pendulumRules {
		def.Rules = append(def.Rules, RuleDefinition{
			Antecedents: []string{r[0], r[1]},
			Consequents: []string{r[2]},
		})
	}
	return def
}

func createPendulumEngine(t *testing.T) *Engine {
	engine, err := NewEngine(pendulumDefinition())
	assert.NoError(t, err)
	return engine
}

type staticSource struct {
	def Definition
	err error
}

func (s staticSource) Definition() (Definition, error) {
	return s.def, s.err
}

func TestNewEngine(t *testing.T) {
	// WHEN
	engine := createPendulumEngine(t)

	// THEN
	assert.Equal(t, StateConfigured, engine.State())
	assert.Len(t, engine.Inputs(), 2)
	assert.Len(t, engine.Outputs(), 1)
	assert.Len(t, engine.Rules().Rules, 15)
	assert.Equal(t, RoleOutput, engine.Outputs()[0].Role)

	// rule #1: NL ZE -> PL
	rule := engine.Rules().Rules[0]
	assert.Equal(t, []TermRef{{Variable: 0, Term: 0}, {Variable: 1, Term: 3}}, rule.Antecedents)
	assert.Equal(t, []TermRef{{Variable: 0, Term: 6}}, rule.Consequents)
}

func TestNewEngineFromSource(t *testing.T) {
	// GIVEN
	source := staticSource{def: pendulumDefinition()}

	// WHEN
	engine, err := NewEngineFromSource(source)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, StateConfigured, engine.State())
}

func TestNewEngineFromSource_Error(t *testing.T) {
	// GIVEN
	expected := errors.New("file not found")
	source := staticSource{err: expected}

	// WHEN
	engine, err := NewEngineFromSource(source)

	// THEN
	assert.Nil(t, engine)
	assert.ErrorIs(t, err, expected)
}

func TestNewEngine_UnknownRuleTerm(t *testing.T) {
	// GIVEN
	def := pendulumDefinition()
	def.Rules[3].Antecedents[1] = "XX"

	// WHEN
	engine, err := NewEngine(def)

	// THEN
	assert.Nil(t, engine)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.ErrorContains(t, err, "rule #4")
	assert.ErrorContains(t, err, "unknown membership function 'XX' for input Velocity")
}

func TestNewEngine_UnknownConsequent(t *testing.T) {
	// GIVEN
	def := pendulumDefinition()
	def.Rules[0].Consequents[0] = "HUGE"

	// WHEN
	_, err := NewEngine(def)

	// THEN
	assert.ErrorContains(t, err, "unknown membership function 'HUGE' for output Force")
}

func TestNewEngine_WrongRuleArity(t *testing.T) {
	// GIVEN
	def := pendulumDefinition()
	def.Rules[0].Antecedents = []string{"NL"}

	// WHEN
	_, err := NewEngine(def)

	// THEN
	assert.ErrorContains(t, err, "expected 2 antecedents, got 1")
}

func TestNewEngine_ReportsAllErrors(t *testing.T) {
	// GIVEN
	def := pendulumDefinition()
	def.Rules[0].Antecedents[0] = "A"
	def.Rules[1].Antecedents[0] = "B"

	// WHEN
	_, err := NewEngine(def)

	// THEN
	assert.ErrorContains(t, err, "rule #1")
	assert.ErrorContains(t, err, "rule #2")
}

func TestNewEngine_InvalidSlope(t *testing.T) {
	// GIVEN
	def := pendulumDefinition()
	def.Outputs[0].Terms[2].Points = [4]int{63, 63, 95, 127}

	// WHEN
	_, err := NewEngine(def)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.ErrorContains(t, err, "variable Force: membership function NS: left slope denominator must be positive")
}

func TestNewEngine_DuplicateNames(t *testing.T) {
	// GIVEN
	def := pendulumDefinition()
	def.Inputs[1].Name = "Angle"
	def.Outputs[0].Terms[1].Name = "NL"

	// WHEN
	_, err := NewEngine(def)

	// THEN
	assert.ErrorContains(t, err, "variable Angle: duplicate variable name")
	assert.ErrorContains(t, err, "duplicate membership function NL")
}

func TestNewEngine_Empty(t *testing.T) {
	// WHEN
	_, err := NewEngine(Definition{})

	// THEN
	assert.ErrorContains(t, err, "no input variables defined")
	assert.ErrorContains(t, err, "no output variables defined")
}

func TestEngine_Uninitialized(t *testing.T) {
	// GIVEN
	engine := &Engine{}

	// WHEN
	_, err := engine.EvaluateValues([]int{1, 2})

	// THEN
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, StateUninitialized, engine.State())
	assert.ErrorIs(t, engine.SetInput("Angle", 1), ErrNotConfigured)
}

func TestEvaluate_ScenarioA(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)

	// WHEN
	result, err := engine.Evaluate(map[string]int{"Angle": 60, "Velocity": 125})

	// THEN
	assert.NoError(t, err)
	force, ok := result.Output("Force")
	assert.True(t, ok)
	assert.Equal(t, 134, force)
	assert.False(t, result.Degraded())
	assert.Equal(t, StateEvaluated, engine.State())

	assert.Equal(t, 21, result.Inputs[0].Degrees["NL"])
	assert.Equal(t, 203, result.Inputs[0].Degrees["NM"])
	assert.Equal(t, 14, result.Inputs[1].Degrees["NS"])
	assert.Equal(t, 210, result.Inputs[1].Degrees["ZE"])

	assert.Equal(t, 21, result.Outputs[0].Degrees["PL"])
	assert.Equal(t, 203, result.Outputs[0].Degrees["PM"])
	assert.Equal(t, 203, result.Outputs[0].Degrees["NM"])
	assert.Equal(t, 0, result.Outputs[0].Degrees["ZE"])
}

func TestEvaluate_ScenarioB(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)

	// WHEN
	result, err := engine.EvaluateValues([]int{125, 230})

	// THEN
	assert.NoError(t, err)
	force, ok := engine.Output("Force")
	assert.True(t, ok)
	assert.Equal(t, 31, force)
	assert.NotEqual(t, 134, force)
	assert.False(t, result.HasDiagnostic(DiagnosticZeroArea))
	assert.Equal(t, 175, result.Outputs[0].Degrees["NL"])
}

func TestEvaluate_ScenarioC_SharedShoulder(t *testing.T) {
	// GIVEN
	def := Definition{
		Inputs: []VariableDefinition{{
			Name: "X",
			Terms: []TermDefinition{
				{Name: "LOW", Points: [4]int{0, 51, 102, 153}},
				{Name: "HIGH", Points: [4]int{51, 102, 153, 204}},
			},
		}},
		Outputs: []VariableDefinition{{
			Name: "Y",
			Terms: []TermDefinition{
				{Name: "OFF", Points: [4]int{0, 51, 51, 102}},
				{Name: "ON", Points: [4]int{102, 153, 153, 204}},
			},
		}},
		Rules: []RuleDefinition{
			{Antecedents: []string{"LOW"}, Consequents: []string{"OFF"}},
			{Antecedents: []string{"HIGH"}, Consequents: []string{"ON"}},
		},
	}
	engine, err := NewEngine(def)
	assert.NoError(t, err)

	// WHEN
	result, err := engine.Evaluate(map[string]int{"X": 102})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, UpperLimit, result.Inputs[0].Degrees["LOW"])
	assert.Equal(t, UpperLimit, result.Inputs[0].Degrees["HIGH"])
	// both output sets are fully active and symmetric around 102
	y, _ := result.Output("Y")
	assert.Equal(t, 102, y)
}

func TestEvaluate_NoMatchAndZeroArea(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)

	// WHEN
	result, err := engine.EvaluateValues([]int{0, 0})

	// THEN
	assert.NoError(t, err)
	force, ok := result.Output("Force")
	assert.True(t, ok)
	assert.Equal(t, 0, force)
	assert.True(t, result.Degraded())
	assert.True(t, result.HasDiagnostic(DiagnosticNoMatch))
	assert.True(t, result.HasDiagnostic(DiagnosticZeroArea))
	assert.Equal(t, "Force", result.Diagnostics[1].Variable)
	assert.Equal(t, 0, result.Diagnostics[1].SumOfAreas)
}

func TestEvaluate_ZeroAreaWithMatchingRules(t *testing.T) {
	// GIVEN
	// the rule only concludes Force, Brake stays empty
	def := Definition{
		Inputs: []VariableDefinition{pendulumVariable("Angle")},
		Outputs: []VariableDefinition{
			pendulumVariable("Force"),
			pendulumVariable("Brake"),
		},
		Rules: []RuleDefinition{
			{Antecedents: []string{"NM"}, Consequents: []string{"PM", NoConclusion}},
		},
	}
	engine, err := NewEngine(def)
	assert.NoError(t, err)
	assert.Len(t, engine.Rules().Rules[0].Consequents, 1)

	// WHEN
	result, err := engine.EvaluateValues([]int{40})

	// THEN
	assert.NoError(t, err)
	assert.False(t, result.HasDiagnostic(DiagnosticNoMatch))
	assert.Len(t, result.Diagnostics, 1)
	assert.Equal(t, DiagnosticZeroArea, result.Diagnostics[0].Kind)
	assert.Equal(t, "Brake", result.Diagnostics[0].Variable)
	force, _ := result.Output("Force")
	assert.Equal(t, 191, force)

	// WHEN
	result, err = engine.EvaluateValues([]int{200})

	// THEN
	assert.True(t, result.HasDiagnostic(DiagnosticNoMatch))
	assert.True(t, result.HasDiagnostic(DiagnosticZeroArea))
	assert.Len(t, result.Diagnostics, 3)
	brake, ok := result.Output("Brake")
	assert.True(t, ok)
	assert.Equal(t, 0, brake)
}

func TestNewEngine_RuleWithoutConclusion(t *testing.T) {
	// GIVEN
	def := pendulumDefinition()
	def.Rules[0].Consequents[0] = NoConclusion

	// WHEN
	_, err := NewEngine(def)

	// THEN
	assert.ErrorContains(t, err, "rule #1 (NL ZE -> -): no consequent")
}

func TestDefuzzify_ZeroAreaGuard(t *testing.T) {
	// GIVEN
	v, err := newVariable(pendulumVariable("Force"), RoleOutput)
	assert.NoError(t, err)

	// WHEN
	sumOfProducts, sumOfAreas, ok := v.defuzzify()

	// THEN
	assert.False(t, ok)
	assert.Equal(t, 0, sumOfProducts)
	assert.Equal(t, 0, sumOfAreas)
	assert.Equal(t, 0, v.Value)
	assert.True(t, v.Valid)
}

func TestEvaluateRules_StrengthIsMinimum(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	engine := createPendulumEngine(t)

	for i := 0; i < 200; i++ {
		// GIVEN
		engine.Reset()
		for v := range engine.inputs {
			for m := range engine.inputs[v].MembershipFunctions {
				engine.inputs[v].MembershipFunctions[m].Degree = rnd.Intn(UpperLimit + 1)
			}
		}

		// WHEN
		engine.EvaluateRules()

		// THEN
		expectedDegrees := map[int]int{}
		for r, rule := range engine.ruleBase.Rules {
			expected := UpperLimit
			for _, ref := range rule.Antecedents {
				expected = min(expected, engine.inputs[ref.Variable].MembershipFunctions[ref.Term].Degree)
			}
			assert.Equal(t, expected, engine.strengths[r])

			term := rule.Consequents[0].Term
			expectedDegrees[term] = max(expectedDegrees[term], expected)
		}
		for term, mf := range engine.outputs[0].MembershipFunctions {
			assert.Equal(t, expectedDegrees[term], mf.Degree)
		}
	}
}

func TestEvaluateRules_MaxAggregation(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)
	engine.Reset()
	angle := &engine.inputs[0]
	velocity := &engine.inputs[1]
	// rule #1: NL ZE -> PL, rule #2: ZE NL -> PL
	angle.MembershipFunctions[0].Degree = 100
	velocity.MembershipFunctions[3].Degree = 200
	angle.MembershipFunctions[3].Degree = 150
	velocity.MembershipFunctions[0].Degree = 180

	// WHEN
	matched := engine.EvaluateRules()

	// THEN
	assert.True(t, matched)
	assert.Equal(t, 100, engine.strengths[0])
	assert.Equal(t, 150, engine.strengths[1])
	// max, neither sum (250) nor last write
	assert.Equal(t, 150, engine.outputs[0].MembershipFunctions[6].Degree)

	// WHEN
	engine.inputs[0].MembershipFunctions[3].Degree = 50
	engine.outputs[0].MembershipFunctions[6].Degree = 0
	engine.EvaluateRules()

	// THEN
	assert.Equal(t, 100, engine.outputs[0].MembershipFunctions[6].Degree)
}

func TestEvaluate_Idempotent(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)
	inputs := map[string]int{"Angle": 60, "Velocity": 125}

	// WHEN
	first, err1 := engine.Evaluate(inputs)
	second, err2 := engine.Evaluate(inputs)

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first.Outputs, second.Outputs)
	assert.Equal(t, first.Rules, second.Rules)
	assert.Equal(t, uint64(1), first.Cycle)
	assert.Equal(t, uint64(2), second.Cycle)
}

func TestEvaluate_NoBleedThrough(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)
	fresh := createPendulumEngine(t)
	a := []int{60, 125}
	b := []int{125, 230}
	expectedB, _ := fresh.EvaluateValues(b)

	for i := 0; i < 3; i++ {
		// WHEN
		resultA, _ := engine.EvaluateValues(a)
		resultB, _ := engine.EvaluateValues(b)

		// THEN
		forceA, _ := resultA.Output("Force")
		forceB, _ := resultB.Output("Force")
		assert.Equal(t, 134, forceA)
		assert.Equal(t, 31, forceB)
		// PM and NM were active in cycle A and must not leak into B
		assert.Equal(t, 0, resultB.Outputs[0].Degrees["PM"])
		assert.Equal(t, 0, resultB.Outputs[0].Degrees["NM"])
		assert.Equal(t, expectedB.Outputs, resultB.Outputs)
	}
}

func TestEvaluate_InvalidInputs(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)
	_, _ = engine.EvaluateValues([]int{60, 125})

	// WHEN
	_, errMissing := engine.Evaluate(map[string]int{"Angle": 1})
	_, errUnknown := engine.Evaluate(map[string]int{"Angle": 1, "Velocity": 2, "Torque": 3})
	_, errCount := engine.EvaluateValues([]int{1})

	// THEN
	assert.ErrorIs(t, errMissing, ErrMissingInput)
	assert.ErrorIs(t, errUnknown, ErrUnknownVariable)
	assert.ErrorIs(t, errCount, ErrInputCount)
	// rejected cycles do not touch the previous result
	force, ok := engine.Output("Force")
	assert.True(t, ok)
	assert.Equal(t, 134, force)
	assert.Equal(t, StateEvaluated, engine.State())
}

func TestReset(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)
	_, _ = engine.EvaluateValues([]int{60, 125})

	// WHEN
	engine.Reset()

	// THEN
	assert.Equal(t, StateReady, engine.State())
	_, ok := engine.Output("Force")
	assert.False(t, ok)
	for _, variables := range [][]Variable{engine.Inputs(), engine.Outputs()} {
		for _, v := range variables {
			for _, mf := range v.MembershipFunctions {
				assert.Equal(t, 0, mf.Degree)
			}
		}
	}
	assert.Len(t, engine.Snapshot().Diagnostics, 0)
}

func TestManualSteps(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)
	engine.Reset()

	// WHEN
	err := engine.SetInputs(map[string]int{"Angle": 60, "Velocity": 125})
	engine.Fuzzify()
	matched := engine.EvaluateRules()
	engine.Defuzzify()

	// THEN
	assert.NoError(t, err)
	assert.True(t, matched)
	force, ok := engine.Output("Force")
	assert.True(t, ok)
	assert.Equal(t, 134, force)
	assert.Equal(t, StateEvaluated, engine.State())
}

func TestSnapshot_RuleTable(t *testing.T) {
	// GIVEN
	engine := createPendulumEngine(t)

	// WHEN
	result, _ := engine.EvaluateValues([]int{60, 125})

	// THEN
	assert.Len(t, result.Rules, 15)
	// rule #3: NM ZE -> PM
	assert.Equal(t, RuleFiring{Index: 2, Strength: 203, Antecedents: []int{203, 210}, Consequents: []int{203}}, result.Rules[2])
	// rule #1: NL ZE -> PL
	assert.Equal(t, 21, result.Rules[0].Strength)
	assert.Equal(t, pendulumTerms, result.Outputs[0].Terms)
}
