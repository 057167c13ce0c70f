package configuration

type SensorConfig struct {
	ID     string              `json:"id"`
	HwMon  *HwMonSensorConfig  `json:"hwmon,omitempty"`
	File   *FileSensorConfig   `json:"file,omitempty"`
	Cmd    *CmdSensorConfig    `json:"cmd,omitempty"`
	Mqtt   *MqttSensorConfig   `json:"mqtt,omitempty"`
	System *SystemSensorConfig `json:"system,omitempty"`
	// Scale maps raw sensor values onto the normalized axis of the engine
	Scale *ScaleConfig `json:"scale,omitempty"`
}

type HwMonSensorConfig struct {
	Platform  string `json:"platform"`
	Index     int    `json:"index"`
	TempInput string `json:"tempInput"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type MqttSensorConfig struct {
	Topic string `json:"topic"`
	// Field is an optional key of a JSON object payload,
	// plain numeric payloads are used as is
	Field string `json:"field,omitempty"`
}

// SystemSensorConfig reads the last output value of another system
type SystemSensorConfig struct {
	System string `json:"system"`
	Output string `json:"output"`
}

// ScaleConfig describes the raw value range that is mapped onto [0..255]
type ScaleConfig struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
