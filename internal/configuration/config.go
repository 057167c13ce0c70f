package configuration

import (
	"os"
	"time"

	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath      string `json:"dbPath"`
	HistorySize int    `json:"historySize"`

	SensorPollingRate       time.Duration `json:"sensorPollingRate"`
	SensorRollingWindowSize int           `json:"sensorRollingWindowSize"`

	ControllerTickRate time.Duration `json:"controllerTickRate"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
	Profiling  ProfilingConfig  `json:"profiling"`
	Mqtt       MqttConfig       `json:"mqtt"`

	Sensors   []SensorConfig   `json:"sensors"`
	Actuators []ActuatorConfig `json:"actuators"`
	Systems   []SystemConfig   `json:"systems"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("fuzzy2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/fuzzy2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/fuzzy2go/fuzzy2go.db")
	viper.SetDefault("HistorySize", 1000)
	viper.SetDefault("SensorPollingRate", 200*time.Millisecond)
	viper.SetDefault("SensorRollingWindowSize", 10)
	viper.SetDefault("ControllerTickRate", 200*time.Millisecond)

	viper.SetDefault("Statistics.Enabled", false)
	viper.SetDefault("Statistics.Port", 9000)

	viper.SetDefault("Api.Enabled", false)
	viper.SetDefault("Api.Host", "localhost")
	viper.SetDefault("Api.Port", 9001)

	viper.SetDefault("Profiling.Enabled", false)
	viper.SetDefault("Profiling.Host", "localhost")
	viper.SetDefault("Profiling.Port", 6060)

	viper.SetDefault("Mqtt.Broker", "")
	viper.SetDefault("Mqtt.ClientId", "fuzzy2go")
	viper.SetDefault("Mqtt.Qos", 0)

	viper.SetDefault("sensors", []SensorConfig{})
	viper.SetDefault("actuators", []ActuatorConfig{})
	viper.SetDefault("systems", []SystemConfig{})
}

// DetectConfigFile reads the configuration file and returns its path.
// A missing or unreadable file is fatal.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig decodes the current viper state into CurrentConfig
func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// viper defaults, which are replaced when passing a custom hook
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		pointsHookFunc(),
		ruleHookFunc(),
		DefaultTrueBoolHookFunc(),
	)
}
