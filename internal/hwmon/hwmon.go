package hwmon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

var ErrNoMatchingSensor = errors.New("no hwmon sensor matched sensor config")

type HwMonController struct {
	Name     string
	Platform string
	Path     string

	Sensors []TempInput
}

// TempInput is a single temperature input of a chip, Index starts at 1
type TempInput struct {
	Label string
	Index int
	Input string
	Max   int
	Min   int
	Value float64
}

// GetChips lists all detected chips that provide at least one temperature input
func GetChips() []*HwMonController {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*HwMonController
	for _, chip := range chips {
		identifier := computeIdentifier(chip)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		inputs := getTempInputs(chip)
		if len(inputs) <= 0 {
			continue
		}

		list = append(list, &HwMonController{
			Name:     identifier,
			Platform: platform,
			Path:     chip.Path,
			Sensors:  inputs,
		})
	}

	return list
}

func getTempInputs(chip gosensors.Chip) []TempInput {
	var result []TempInput

	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		subFeatures := feature.GetSubFeatures()
		inputSubFeature, ok := getSubFeature(subFeatures, gosensors.SubFeatureTypeTempInput)
		if !ok {
			continue
		}

		maximum := -1
		if maxSubFeature, ok := getSubFeature(subFeatures, gosensors.SubFeatureTypeTempMax); ok {
			maximum = int(maxSubFeature.GetValue())
		}
		minimum := -1
		if minSubFeature, ok := getSubFeature(subFeatures, gosensors.SubFeatureTypeTempMin); ok {
			minimum = int(minSubFeature.GetValue())
		}

		result = append(result, TempInput{
			Label: getLabel(chip.Path, inputSubFeature.Name),
			Index: len(result) + 1,
			Input: fmt.Sprintf("%s/%s", chip.Path, inputSubFeature.Name),
			Max:   maximum,
			Min:   minimum,
			Value: inputSubFeature.GetValue(),
		})
	}

	return result
}

func getSubFeature(subFeatures []gosensors.SubFeature, subFeatureType gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, subFeature := range subFeatures {
		if subFeature.Type == subFeatureType {
			return subFeature, true
		}
	}
	return gosensors.SubFeature{}, false
}

// FindTempInput resolves the sysfs input path of a hwmon sensor configuration
func FindTempInput(controllers []*HwMonController, config configuration.HwMonSensorConfig) (string, error) {
	if len(config.TempInput) > 0 {
		return config.TempInput, nil
	}

	for _, controller := range controllers {
		matched, err := regexp.MatchString("(?i)"+config.Platform, controller.Platform)
		if err != nil {
			return "", fmt.Errorf("invalid platform pattern '%s': %w", config.Platform, err)
		}
		if !matched {
			continue
		}
		for _, input := range controller.Sensors {
			if input.Index == config.Index {
				return input.Input, nil
			}
		}
	}

	return "", fmt.Errorf("%w: platform '%s', index %d", ErrNoMatchingSensor, config.Platform, config.Index)
}

// getLabel read the label of a in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(devicePath+"/"+input, "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		label = input
	}
	return label
}

func getDeviceName(devicePath string) string {
	content, _ := os.ReadFile(devicePath + "/name")
	name := strings.TrimSpace(string(content))
	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}
	return name
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix
	if len(name) <= 0 {
		name = getDeviceName(chip.Path)
	}

	switch chip.Bus.Type {
	case BusTypeIsa:
		return fmt.Sprintf("%s-isa-%04x", name, chip.Addr)
	case BusTypePci:
		return fmt.Sprintf("%s-pci-%04x", name, chip.Addr)
	case BusTypeAcpi:
		return fmt.Sprintf("%s-acpi-%d", name, chip.Bus.Nr)
	}
	return name
}

func findPlatform(devicePath string) string {
	platformRegex := regexp.MustCompile(`.*/platform/[^/]+`)
	return platformRegex.FindString(devicePath)
}
