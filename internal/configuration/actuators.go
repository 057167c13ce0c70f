package configuration

type ActuatorConfig struct {
	ID   string              `json:"id"`
	File *FileActuatorConfig `json:"file,omitempty"`
	Cmd  *CmdActuatorConfig  `json:"cmd,omitempty"`
	Mqtt *MqttActuatorConfig `json:"mqtt,omitempty"`
	// Scale maps the normalized output value back onto the range of the actuator
	Scale *ScaleConfig `json:"scale,omitempty"`
	// MaxChangePerCycle limits how fast the applied value follows the output
	MaxChangePerCycle *int `json:"maxChangePerCycle,omitempty"`
}

type FileActuatorConfig struct {
	Path string `json:"path"`
}

// CmdActuatorConfig executes a command, "%value%" in Args is replaced
// with the current value
type CmdActuatorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type MqttActuatorConfig struct {
	Topic    string `json:"topic"`
	Retained bool   `json:"retained"`
}
