package sensors

import (
	"fmt"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/systems"
)

// SystemSensor reads the latest output value of another system
type SystemSensor struct {
	movingAvg
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor *SystemSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *SystemSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *SystemSensor) GetValue() (float64, error) {
	source := sensor.Config.System
	value, ok := systems.GetOutputValue(source.System, source.Output)
	if !ok {
		return 0, fmt.Errorf("sensor %s: output %s of system %s: %w", sensor.GetId(), source.Output, source.System, ErrNoValue)
	}
	return float64(value), nil
}
