package actuators

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/util"
)

type FileActuator struct {
	lastSetValue
	Config configuration.ActuatorConfig `json:"configuration"`
}

func (actuator *FileActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator *FileActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator *FileActuator) SetValue(value int) error {
	filePath := actuator.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	err := util.WriteFileAtomic(filePath, []byte(FormatValue(actuator.Config, value)))
	if err != nil {
		return fmt.Errorf("actuator %s: unable to write to %s: %w", actuator.GetId(), filePath, err)
	}
	actuator.setLastSetValue(value)
	return nil
}
