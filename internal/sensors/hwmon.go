package sensors

import (
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/util"
)

// HwmonSensor reads a temperature input in millidegrees celsius
type HwmonSensor struct {
	movingAvg
	Input  string                     `json:"input"`
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor *HwmonSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *HwmonSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

// GetValue returns the temperature in degrees celsius
func (sensor *HwmonSensor) GetValue() (float64, error) {
	value, err := util.ReadFloatFromFile(sensor.Input)
	if err != nil {
		return 0, err
	}
	return value / 1000, nil
}
