package actuators

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/mqtt"
	"github.com/markusressel/fuzzy2go/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// InitialLastSetValue marks an actuator that has not been written yet
const InitialLastSetValue = -1

var (
	ActuatorMap = cmap.New[Actuator]()
)

type Actuator interface {
	GetId() string

	GetConfig() configuration.ActuatorConfig

	// SetValue applies an output value in [0..UpperLimit]
	SetValue(value int) error

	// GetLastSetValue returns the last value that was applied successfully,
	// or InitialLastSetValue
	GetLastSetValue() int
}

func NewActuator(config configuration.ActuatorConfig) (Actuator, error) {
	if config.File != nil {
		return &FileActuator{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdActuator{
			Config: config,
		}, nil
	}

	if config.Mqtt != nil {
		client, err := mqtt.Shared()
		if err != nil {
			return nil, fmt.Errorf("actuator %s: %w", config.ID, err)
		}
		return &MqttActuator{
			Config: config,
			Client: client,
		}, nil
	}

	return nil, fmt.Errorf("no matching actuator type for actuator: %s", config.ID)
}

// Denormalize maps an output value onto the range of the actuator.
// Without a scale the value is passed through.
func Denormalize(config configuration.ActuatorConfig, value int) float64 {
	if config.Scale != nil {
		return util.Denormalize(value, fuzzy.UpperLimit, config.Scale.Min, config.Scale.Max)
	}
	return float64(value)
}

// FormatValue renders the denormalized value without trailing zeros
func FormatValue(config configuration.ActuatorConfig, value int) string {
	return strconv.FormatFloat(Denormalize(config, value), 'f', -1, 64)
}

type lastSetValue struct {
	mu    sync.RWMutex
	value *int
}

func (l *lastSetValue) GetLastSetValue() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.value == nil {
		return InitialLastSetValue
	}
	return *l.value
}

func (l *lastSetValue) setLastSetValue(value int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = &value
}
