package fuzzy

import (
	"fmt"
)

type Role int

const (
	RoleInput Role = iota
	RoleOutput
)

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Variable is a crisp value together with the membership functions
// partitioning its domain.
type Variable struct {
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Value int    `json:"value"`
	// Valid is false for an output variable until Defuzzify has written its Value
	Valid               bool                 `json:"valid"`
	MembershipFunctions []MembershipFunction `json:"membershipFunctions"`
}

func newVariable(def VariableDefinition, role Role) (Variable, error) {
	if len(def.Name) <= 0 {
		return Variable{}, newConfigurationError(fmt.Sprintf("%s variable", role), "name must not be empty")
	}
	if len(def.Terms) <= 0 {
		return Variable{}, newConfigurationError(fmt.Sprintf("variable %s", def.Name), "no membership functions defined")
	}

	v := Variable{
		Name:                def.Name,
		Role:                role,
		Valid:               role == RoleInput,
		MembershipFunctions: make([]MembershipFunction, 0, len(def.Terms)),
	}
	for _, term := range def.Terms {
		if _, exists := v.Term(term.Name); exists {
			return Variable{}, newConfigurationError(fmt.Sprintf("variable %s", def.Name), fmt.Sprintf("duplicate membership function %s", term.Name))
		}
		mf, err := NewMembershipFunction(term.Name, term.Points)
		if err != nil {
			return Variable{}, fmt.Errorf("variable %s: %w", def.Name, err)
		}
		v.MembershipFunctions = append(v.MembershipFunctions, mf)
	}

	return v, nil
}

// Term returns the index of the membership function with the given name
func (v Variable) Term(name string) (int, bool) {
	for i, mf := range v.MembershipFunctions {
		if mf.Name == name {
			return i, true
		}
	}
	return -1, false
}

func (v *Variable) fuzzify() {
	for i := range v.MembershipFunctions {
		v.MembershipFunctions[i].Fuzzify(v.Value)
	}
}

func (v *Variable) reset() {
	for i := range v.MembershipFunctions {
		v.MembershipFunctions[i].Degree = 0
	}
	if v.Role == RoleOutput {
		v.Value = 0
		v.Valid = false
	}
}

// defuzzify computes the centroid of the aggregated output sets.
// ok is false if the aggregated area is empty, in which case Value is 0.
func (v *Variable) defuzzify() (sumOfProducts int, sumOfAreas int, ok bool) {
	for _, mf := range v.MembershipFunctions {
		area := mf.Area()
		sumOfProducts += area * mf.Centroid()
		sumOfAreas += area
	}

	v.Valid = true
	if sumOfAreas <= 0 {
		v.Value = 0
		return sumOfProducts, sumOfAreas, false
	}
	v.Value = sumOfProducts / sumOfAreas
	return sumOfProducts, sumOfAreas, true
}
