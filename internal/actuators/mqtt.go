package actuators

import (
	"fmt"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/mqtt"
)

type MqttActuator struct {
	lastSetValue
	Config configuration.ActuatorConfig `json:"configuration"`
	Client mqtt.Client                  `json:"-"`
}

func (actuator *MqttActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator *MqttActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator *MqttActuator) SetValue(value int) error {
	conf := actuator.Config.Mqtt
	payload := []byte(FormatValue(actuator.Config, value))
	if err := actuator.Client.Publish(conf.Topic, conf.Retained, payload); err != nil {
		return fmt.Errorf("actuator %s: %w", actuator.GetId(), err)
	}
	actuator.setLastSetValue(value)
	return nil
}
