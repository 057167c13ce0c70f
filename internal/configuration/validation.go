package configuration

import (
	"errors"
	"fmt"

	"github.com/looplab/tarjan"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/markusressel/fuzzy2go/internal/util"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateSensors(config)
	if err != nil {
		return err
	}
	err = validateActuators(config)
	if err != nil {
		return err
	}
	err = validateSystems(config)
	if err != nil {
		return err
	}

	if containsCmdItems(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %w", path, err)
		}
	}

	return nil
}

func containsCmdItems(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}
	for _, actuatorConfig := range config.Actuators {
		if actuatorConfig.Cmd != nil {
			return true
		}
	}
	return false
}

func validateScale(kind string, id string, scale *ScaleConfig) error {
	if scale == nil {
		return nil
	}
	if scale.Max <= scale.Min {
		return fmt.Errorf("%s %s: scale max (%v) must be greater than min (%v)", kind, id, scale.Max, scale.Min)
	}
	return nil
}

func validateSensors(config *Configuration) error {
	var ids []string
	for _, sensorConfig := range config.Sensors {
		if slices.Contains(ids, sensorConfig.ID) {
			return fmt.Errorf("duplicate sensor id detected: %s", sensorConfig.ID)
		}
		ids = append(ids, sensorConfig.ID)

		subConfigs := 0
		if sensorConfig.HwMon != nil {
			subConfigs++
		}
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if sensorConfig.Mqtt != nil {
			subConfigs++
		}
		if sensorConfig.System != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: hwmon | file | cmd | mqtt | system", sensorConfig.ID)
		}

		if !isSensorConfigInUse(sensorConfig, config.Systems) {
			ui.Warning("Unused sensor configuration: %s", sensorConfig.ID)
		}

		if sensorConfig.HwMon != nil {
			if sensorConfig.HwMon.Index <= 0 {
				return fmt.Errorf("sensor %s: invalid index, must be >= 1", sensorConfig.ID)
			}
		}

		if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: no file path provided", sensorConfig.ID)
		}

		if sensorConfig.Cmd != nil && len(sensorConfig.Cmd.Exec) <= 0 {
			return fmt.Errorf("sensor %s: executable is missing", sensorConfig.ID)
		}

		if sensorConfig.Mqtt != nil {
			if len(sensorConfig.Mqtt.Topic) <= 0 {
				return fmt.Errorf("sensor %s: mqtt topic is missing", sensorConfig.ID)
			}
			if len(config.Mqtt.Broker) <= 0 {
				return fmt.Errorf("sensor %s: mqtt broker is not configured", sensorConfig.ID)
			}
		}

		if sensorConfig.System != nil {
			if len(sensorConfig.System.Output) <= 0 {
				return fmt.Errorf("sensor %s: missing output of system '%s'", sensorConfig.ID, sensorConfig.System.System)
			}
			if !systemIdExists(sensorConfig.System.System, config) {
				return fmt.Errorf("sensor %s: no system definition with id '%s' found", sensorConfig.ID, sensorConfig.System.System)
			}
		}

		if err := validateScale("sensor", sensorConfig.ID, sensorConfig.Scale); err != nil {
			return err
		}
	}

	return nil
}

func isSensorConfigInUse(config SensorConfig, systems []SystemConfig) bool {
	for _, systemConfig := range systems {
		for _, input := range systemConfig.Inputs {
			if input.Sensor == config.ID {
				return true
			}
		}
	}
	return false
}

func validateActuators(config *Configuration) error {
	var ids []string
	for _, actuatorConfig := range config.Actuators {
		if slices.Contains(ids, actuatorConfig.ID) {
			return fmt.Errorf("duplicate actuator id detected: %s", actuatorConfig.ID)
		}
		ids = append(ids, actuatorConfig.ID)

		subConfigs := 0
		if actuatorConfig.File != nil {
			subConfigs++
		}
		if actuatorConfig.Cmd != nil {
			subConfigs++
		}
		if actuatorConfig.Mqtt != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("actuator %s: only one actuator type can be used per actuator definition block", actuatorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("actuator %s: sub-configuration for actuator is missing, use one of: file | cmd | mqtt", actuatorConfig.ID)
		}

		if !isActuatorConfigInUse(actuatorConfig, config.Systems) {
			ui.Warning("Unused actuator configuration: %s", actuatorConfig.ID)
		}

		if actuatorConfig.File != nil && len(actuatorConfig.File.Path) <= 0 {
			return fmt.Errorf("actuator %s: no file path provided", actuatorConfig.ID)
		}

		if actuatorConfig.Cmd != nil && len(actuatorConfig.Cmd.Exec) <= 0 {
			return fmt.Errorf("actuator %s: executable is missing", actuatorConfig.ID)
		}

		if actuatorConfig.Mqtt != nil {
			if len(actuatorConfig.Mqtt.Topic) <= 0 {
				return fmt.Errorf("actuator %s: mqtt topic is missing", actuatorConfig.ID)
			}
			if len(config.Mqtt.Broker) <= 0 {
				return fmt.Errorf("actuator %s: mqtt broker is not configured", actuatorConfig.ID)
			}
		}

		if err := validateScale("actuator", actuatorConfig.ID, actuatorConfig.Scale); err != nil {
			return err
		}

		if actuatorConfig.MaxChangePerCycle != nil && *actuatorConfig.MaxChangePerCycle <= 0 {
			return fmt.Errorf("actuator %s: maxChangePerCycle must be > 0", actuatorConfig.ID)
		}
	}

	return nil
}

func isActuatorConfigInUse(config ActuatorConfig, systems []SystemConfig) bool {
	for _, systemConfig := range systems {
		for _, output := range systemConfig.Outputs {
			if util.ContainsString(output.Actuators, config.ID) {
				return true
			}
		}
	}
	return false
}

func validateSystems(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	var ids []string
	for _, systemConfig := range config.Systems {
		if slices.Contains(ids, systemConfig.ID) {
			return fmt.Errorf("duplicate system id detected: %s", systemConfig.ID)
		}
		ids = append(ids, systemConfig.ID)

		if err := validateSystemDefinition(systemConfig); err != nil {
			return err
		}

		var names []string
		var connections []interface{}
		for _, input := range systemConfig.Inputs {
			if slices.Contains(names, input.Name) {
				return fmt.Errorf("system %s: duplicate variable %s", systemConfig.ID, input.Name)
			}
			names = append(names, input.Name)

			if len(input.Sensor) <= 0 {
				continue
			}
			sensorConfig := findSensor(input.Sensor, config)
			if sensorConfig == nil {
				return fmt.Errorf("system %s: no sensor definition with id '%s' found", systemConfig.ID, input.Sensor)
			}
			if sensorConfig.System != nil {
				if sensorConfig.System.System == systemConfig.ID {
					return fmt.Errorf("system %s: a system cannot use its own output as input", systemConfig.ID)
				}
				connections = append(connections, sensorConfig.System.System)
			}
		}
		graph[systemConfig.ID] = connections

		for _, output := range systemConfig.Outputs {
			if slices.Contains(names, output.Name) {
				return fmt.Errorf("system %s: duplicate variable %s", systemConfig.ID, output.Name)
			}
			names = append(names, output.Name)

			for _, actuator := range output.Actuators {
				if !actuatorIdExists(actuator, config) {
					return fmt.Errorf("system %s: no actuator definition with id '%s' found", systemConfig.ID, actuator)
				}
			}
		}
	}

	return validateNoLoops(graph)
}

func validateSystemDefinition(systemConfig SystemConfig) error {
	kinds := 0
	if len(systemConfig.Builtin) > 0 {
		kinds++
	}
	if systemConfig.Legacy != nil {
		kinds++
	}
	if len(systemConfig.Rules) > 0 {
		kinds++
	}
	if kinds > 1 {
		return fmt.Errorf("system %s: only one definition kind can be used per system, use one of: builtin | legacy | rules", systemConfig.ID)
	}
	if kinds <= 0 {
		return fmt.Errorf("system %s: definition is missing, use one of: builtin | legacy | rules", systemConfig.ID)
	}

	if systemConfig.Legacy != nil {
		legacy := systemConfig.Legacy
		if len(legacy.Inputs) <= 0 || len(legacy.Outputs) <= 0 || len(legacy.Rules) <= 0 {
			return fmt.Errorf("system %s: legacy definition needs inputs, outputs and rules files", systemConfig.ID)
		}
	}

	if systemConfig.IsInline() {
		if len(systemConfig.Inputs) <= 0 || len(systemConfig.Outputs) <= 0 {
			return fmt.Errorf("system %s: inline definition needs at least one input and one output", systemConfig.ID)
		}
		for _, input := range systemConfig.Inputs {
			if len(input.Terms) <= 0 {
				return fmt.Errorf("system %s: input %s has no terms", systemConfig.ID, input.Name)
			}
		}
		for _, output := range systemConfig.Outputs {
			if len(output.Terms) <= 0 {
				return fmt.Errorf("system %s: output %s has no terms", systemConfig.ID, output.Name)
			}
		}
	}

	return nil
}

func findSensor(sensorId string, config *Configuration) *SensorConfig {
	for i := range config.Sensors {
		if config.Sensors[i].ID == sensorId {
			return &config.Sensors[i]
		}
	}
	return nil
}

func actuatorIdExists(actuatorId string, config *Configuration) bool {
	for _, actuator := range config.Actuators {
		if actuator.ID == actuatorId {
			return true
		}
	}
	return false
}

func systemIdExists(systemId string, config *Configuration) bool {
	for _, system := range config.Systems {
		if system.ID == systemId {
			return true
		}
	}
	return false
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return errors.New(fmt.Sprintf("you have created a system dependency cycle: %v", items))
		}
	}
	return nil
}
