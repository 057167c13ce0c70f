package sensors

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/mqtt"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/markusressel/fuzzy2go/internal/util"
)

var ErrNoValue = errors.New("no value received yet")

// MqttSensor keeps the last value published to its topic
type MqttSensor struct {
	movingAvg
	Config configuration.SensorConfig `json:"configuration"`

	valueMu  sync.RWMutex
	value    float64
	received bool
}

func NewMqttSensor(config configuration.SensorConfig, client mqtt.Client) (*MqttSensor, error) {
	sensor := &MqttSensor{Config: config}
	err := client.Subscribe(config.Mqtt.Topic, func(topic string, payload []byte) {
		value, err := parsePayload(payload, config.Mqtt.Field)
		if err != nil {
			ui.Warning("sensor %s: ignoring message on %s: %v", config.ID, topic, err)
			return
		}
		sensor.valueMu.Lock()
		sensor.value = value
		sensor.received = true
		sensor.valueMu.Unlock()
	})
	if err != nil {
		return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
	}
	return sensor, nil
}

func parsePayload(payload []byte, field string) (float64, error) {
	if len(field) <= 0 {
		return util.ParseFloat(string(payload))
	}

	var document map[string]interface{}
	if err := json.Unmarshal(payload, &document); err != nil {
		return 0, err
	}
	switch value := document[field].(type) {
	case float64:
		return value, nil
	case string:
		return util.ParseFloat(value)
	case nil:
		return 0, fmt.Errorf("field '%s' is missing", field)
	default:
		return 0, fmt.Errorf("field '%s' is not a number", field)
	}
}

func (sensor *MqttSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *MqttSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *MqttSensor) GetValue() (float64, error) {
	sensor.valueMu.RLock()
	defer sensor.valueMu.RUnlock()
	if !sensor.received {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), ErrNoValue)
	}
	return sensor.value, nil
}
