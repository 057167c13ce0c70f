package actuators

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/mqtt"
	"github.com/stretchr/testify/assert"
)

func TestDenormalize(t *testing.T) {
	// GIVEN
	scaled := configuration.ActuatorConfig{ID: "motor", Scale: &configuration.ScaleConfig{Min: -10, Max: 10}}
	unscaled := configuration.ActuatorConfig{ID: "raw"}

	// THEN
	assert.Equal(t, -10.0, Denormalize(scaled, 0))
	assert.Equal(t, 10.0, Denormalize(scaled, 255))
	assert.Equal(t, 134.0, Denormalize(unscaled, 134))
}

func TestFormatValue(t *testing.T) {
	// GIVEN
	scaled := configuration.ActuatorConfig{ID: "valve", Scale: &configuration.ScaleConfig{Min: 0, Max: 100}}
	unscaled := configuration.ActuatorConfig{ID: "raw"}

	// THEN
	assert.Equal(t, "20", FormatValue(scaled, 51))
	assert.Equal(t, "134", FormatValue(unscaled, 134))
}

func TestNewActuator(t *testing.T) {
	// GIVEN
	fileConfig := configuration.ActuatorConfig{ID: "a", File: &configuration.FileActuatorConfig{Path: "/tmp/a"}}
	cmdConfig := configuration.ActuatorConfig{ID: "b", Cmd: &configuration.CmdActuatorConfig{Exec: "/usr/bin/b"}}

	// WHEN
	fileActuator, fileErr := NewActuator(fileConfig)
	cmdActuator, cmdErr := NewActuator(cmdConfig)
	_, emptyErr := NewActuator(configuration.ActuatorConfig{ID: "c"})

	// THEN
	assert.NoError(t, fileErr)
	assert.IsType(t, &FileActuator{}, fileActuator)
	assert.NoError(t, cmdErr)
	assert.IsType(t, &CmdActuator{}, cmdActuator)
	assert.EqualError(t, emptyErr, "no matching actuator type for actuator: c")
}

func TestFileActuator_SetValue(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "force")
	actuator := &FileActuator{Config: configuration.ActuatorConfig{ID: "motor", File: &configuration.FileActuatorConfig{Path: path}}}
	assert.Equal(t, InitialLastSetValue, actuator.GetLastSetValue())

	// WHEN
	err := actuator.SetValue(134)

	// THEN
	assert.NoError(t, err)
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "134", string(data))
	assert.Equal(t, 134, actuator.GetLastSetValue())
}

func TestFileActuator_SetValueFails(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "missing", "force")
	actuator := &FileActuator{Config: configuration.ActuatorConfig{ID: "motor", File: &configuration.FileActuatorConfig{Path: path}}}

	// WHEN
	err := actuator.SetValue(134)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, InitialLastSetValue, actuator.GetLastSetValue())
}

func TestCmdActuator_SetValueFails(t *testing.T) {
	// GIVEN
	actuator := &CmdActuator{Config: configuration.ActuatorConfig{
		ID:  "motor",
		Cmd: &configuration.CmdActuatorConfig{Exec: "/does/not/exist", Args: []string{"%value%"}},
	}}

	// WHEN
	err := actuator.SetValue(10)

	// THEN
	assert.ErrorContains(t, err, "actuator motor: cannot execute /does/not/exist")
	assert.Equal(t, InitialLastSetValue, actuator.GetLastSetValue())
}

func TestMqttActuator_SetValue(t *testing.T) {
	// GIVEN
	client := mqtt.NewFakeClient()
	actuator := &MqttActuator{
		Config: configuration.ActuatorConfig{
			ID:    "motor",
			Mqtt:  &configuration.MqttActuatorConfig{Topic: "pendulum/force", Retained: true},
			Scale: &configuration.ScaleConfig{Min: 0, Max: 100},
		},
		Client: client,
	}

	// WHEN
	err := actuator.SetValue(255)

	// THEN
	assert.NoError(t, err)
	payload, ok := client.LastPublished("pendulum/force")
	assert.True(t, ok)
	assert.Equal(t, "100", payload)
	assert.True(t, client.Retained["pendulum/force"])
	assert.Equal(t, 255, actuator.GetLastSetValue())
}
