package sensors

import (
	"fmt"
	"time"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/util"
)

const cmdTimeout = 2 * time.Second

type CmdSensor struct {
	movingAvg
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor *CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *CmdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *CmdSensor) GetValue() (float64, error) {
	exec := sensor.Config.Cmd.Exec
	args := sensor.Config.Cmd.Args
	result, err := util.SafeCmdExecution(exec, args, cmdTimeout)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	value, err := util.ParseFloat(result)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to parse output of %s: %w", sensor.GetId(), exec, err)
	}
	return value, nil
}
