package systems

import (
	"sync"
	"time"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/loader"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SystemMap = cmap.New[*System]()
)

// System serializes access to one engine, which is shared by
// the control loop and the api.
type System struct {
	mu     sync.Mutex
	config configuration.SystemConfig
	engine *fuzzy.Engine

	lastResult *fuzzy.Result
	lastUpdate time.Time
	stats      Stats
}

// Stats counts the evaluations of a system since it was created
type Stats struct {
	Cycles   uint64 `json:"cycles"`
	Failures uint64 `json:"failures"`
	NoMatch  uint64 `json:"noMatch"`
	ZeroArea uint64 `json:"zeroArea"`
}

func NewSystem(config configuration.SystemConfig, engine *fuzzy.Engine) *System {
	return &System{
		config: config,
		engine: engine,
	}
}

func (s *System) GetId() string {
	return s.config.ID
}

func (s *System) GetConfig() configuration.SystemConfig {
	return s.config
}

// Evaluate runs one full cycle with the given input values
func (s *System) Evaluate(inputs map[string]int) (fuzzy.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.engine.Evaluate(inputs)
	if err != nil {
		s.stats.Failures++
		return fuzzy.Result{}, err
	}
	s.stats.Cycles++
	for _, diagnostic := range result.Diagnostics {
		switch diagnostic.Kind {
		case fuzzy.DiagnosticNoMatch:
			s.stats.NoMatch++
		case fuzzy.DiagnosticZeroArea:
			s.stats.ZeroArea++
		}
	}
	s.lastResult = &result
	s.lastUpdate = time.Now()
	return result, nil
}

// Simulate runs one cycle without recording it, the outputs of the
// system and its statistics are left untouched.
func (s *System) Simulate(inputs map[string]int) (fuzzy.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Evaluate(inputs)
}

// LastResult returns the result of the most recent successful cycle
func (s *System) LastResult() (fuzzy.Result, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastResult == nil {
		return fuzzy.Result{}, time.Time{}, false
	}
	return *s.lastResult, s.lastUpdate, true
}

func (s *System) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// OutputValue returns the latest value of an output variable,
// ok is false until the output has been computed.
func (s *System) OutputValue(name string) (value int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastResult == nil {
		return 0, false
	}
	return s.lastResult.Output(name)
}

// Variables returns a copy of the input and output variables of the engine
func (s *System) Variables() (inputs []fuzzy.Variable, outputs []fuzzy.Variable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyVariables(s.engine.Inputs()), copyVariables(s.engine.Outputs())
}

// Definition returns the terms and rules the system was loaded with
func (s *System) Definition() fuzzy.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Definition()
}

func (s *System) Rules() fuzzy.RuleBase {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Rules()
}

func copyVariables(variables []fuzzy.Variable) []fuzzy.Variable {
	result := make([]fuzzy.Variable, len(variables))
	for i, variable := range variables {
		result[i] = variable
		result[i].MembershipFunctions = append([]fuzzy.MembershipFunction(nil), variable.MembershipFunctions...)
	}
	return result
}

// GetOutputValue looks up the latest output value of a registered system
func GetOutputValue(systemId string, output string) (int, bool) {
	system, ok := SystemMap.Get(systemId)
	if !ok {
		return 0, false
	}
	return system.OutputValue(output)
}

// CreateSystem loads the definition of config and registers the system
func CreateSystem(config configuration.SystemConfig) (*System, error) {
	engine, err := loader.LoadEngine(config)
	if err != nil {
		return nil, err
	}
	system := NewSystem(config, engine)
	SystemMap.Set(system.GetId(), system)
	return system, nil
}
