package actuators

import (
	"fmt"
	"time"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/util"
)

const cmdTimeout = 2 * time.Second

// CmdActuator runs a command for each value, see util.ValuePlaceholder
type CmdActuator struct {
	lastSetValue
	Config configuration.ActuatorConfig `json:"configuration"`
}

func (actuator *CmdActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator *CmdActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator *CmdActuator) SetValue(value int) error {
	conf := actuator.Config.Cmd
	args := util.SubstituteArgs(conf.Args, util.ValuePlaceholder, FormatValue(actuator.Config, value))
	_, err := util.SafeCmdExecution(conf.Exec, args, cmdTimeout)
	if err != nil {
		return fmt.Errorf("actuator %s: %w", actuator.GetId(), err)
	}
	actuator.setLastSetValue(value)
	return nil
}
