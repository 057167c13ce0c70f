package fuzzy

type DiagnosticKind string

const (
	// DiagnosticNoMatch is reported when no rule fired with a strength > 0
	DiagnosticNoMatch DiagnosticKind = "no_match"
	// DiagnosticZeroArea is reported for an output variable whose aggregated
	// membership functions have no area, its value defaults to 0
	DiagnosticZeroArea DiagnosticKind = "zero_area"
)

type Diagnostic struct {
	Kind          DiagnosticKind `json:"kind"`
	Variable      string         `json:"variable,omitempty"`
	Message       string         `json:"message"`
	SumOfProducts int            `json:"sumOfProducts"`
	SumOfAreas    int            `json:"sumOfAreas"`
}

type VariableSnapshot struct {
	Name    string         `json:"name"`
	Value   int            `json:"value"`
	Valid   bool           `json:"valid"`
	Degrees map[string]int `json:"degrees"`
	// Terms keeps the order of Degrees
	Terms []string `json:"terms"`
}

// RuleFiring captures the antecedent and consequent degrees of one rule
// after rule evaluation.
type RuleFiring struct {
	Index       int   `json:"index"`
	Strength    int   `json:"strength"`
	Antecedents []int `json:"antecedents"`
	Consequents []int `json:"consequents"`
}

// Result is a copy of the engine state after one evaluation cycle.
type Result struct {
	Cycle       uint64             `json:"cycle"`
	Inputs      []VariableSnapshot `json:"inputs"`
	Outputs     []VariableSnapshot `json:"outputs"`
	Rules       []RuleFiring       `json:"rules"`
	Diagnostics []Diagnostic       `json:"diagnostics"`
}

// Degraded is true if the cycle produced any diagnostic.
func (r Result) Degraded() bool {
	return len(r.Diagnostics) > 0
}

// Output returns the value of the output variable with the given name.
func (r Result) Output(name string) (int, bool) {
	for _, o := range r.Outputs {
		if o.Name == name {
			return o.Value, o.Valid
		}
	}
	return 0, false
}

// HasDiagnostic reports whether a diagnostic of the given kind was raised.
func (r Result) HasDiagnostic(kind DiagnosticKind) bool {
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func snapshotVariable(v Variable) VariableSnapshot {
	s := VariableSnapshot{
		Name:    v.Name,
		Value:   v.Value,
		Valid:   v.Valid,
		Degrees: make(map[string]int, len(v.MembershipFunctions)),
		Terms:   make([]string, 0, len(v.MembershipFunctions)),
	}
	for _, mf := range v.MembershipFunctions {
		s.Degrees[mf.Name] = mf.Degree
		s.Terms = append(s.Terms, mf.Name)
	}
	return s
}
