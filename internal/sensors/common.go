package sensors

import (
	"fmt"
	"math"
	"sync"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/hwmon"
	"github.com/markusressel/fuzzy2go/internal/mqtt"
	"github.com/markusressel/fuzzy2go/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current raw value of this sensor
	GetValue() (float64, error)

	// GetMovingAvg returns the moving average of this sensor's value
	GetMovingAvg() float64
	SetMovingAvg(avg float64)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.HwMon != nil {
		input, err := hwmon.FindTempInput(hwmon.GetChips(), *config.HwMon)
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
		}
		return &HwmonSensor{
			Input:  input,
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	if config.Mqtt != nil {
		client, err := mqtt.Shared()
		if err != nil {
			return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
		}
		return NewMqttSensor(config, client)
	}

	if config.System != nil {
		return &SystemSensor{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// Normalize maps a raw sensor value onto the value range of the engine.
// Without a scale the raw value is expected to already be in range.
func Normalize(config configuration.SensorConfig, raw float64) int {
	if config.Scale != nil {
		return util.Normalize(raw, config.Scale.Min, config.Scale.Max, fuzzy.UpperLimit)
	}
	return util.Coerce(int(math.Round(raw)), 0, fuzzy.UpperLimit)
}

type movingAvg struct {
	mu    sync.RWMutex
	value float64
}

func (m *movingAvg) GetMovingAvg() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

func (m *movingAvg) SetMovingAvg(avg float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = avg
}
