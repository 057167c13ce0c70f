package hwmon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/md14454/gosensors"
	"github.com/stretchr/testify/assert"
)

func TestComputeIdentifierIsa(t *testing.T) {
	// GIVEN
	c := gosensors.Chip{
		Prefix: "coretemp",
		Addr:   0x0,
		Bus: gosensors.Bus{
			Type: BusTypeIsa,
			Nr:   0,
		},
		Path: "/sys/class/hwmon/hwmon2",
	}

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, "coretemp-isa-0000", result)
}

func TestComputeIdentifierPci(t *testing.T) {
	// GIVEN
	c := gosensors.Chip{
		Prefix: "nvme",
		Addr:   0x500,
		Bus: gosensors.Bus{
			Type: BusTypePci,
			Nr:   1,
		},
		Path: "/sys/class/hwmon/hwmon4",
	}

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, "nvme-pci-0500", result)
}

func TestComputeIdentifierAcpi(t *testing.T) {
	// GIVEN
	c := gosensors.Chip{
		Prefix: "acpitz",
		Bus: gosensors.Bus{
			Type: BusTypeAcpi,
			Nr:   1,
		},
		Path: "/sys/class/hwmon/hwmon0",
	}
	expected := fmt.Sprintf("%s-acpi-%d", c.Prefix, c.Bus.Nr)

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, expected, result)
}

func TestComputeIdentifierWithoutPrefix(t *testing.T) {
	// GIVEN
	devicePath := t.TempDir()
	err := os.WriteFile(filepath.Join(devicePath, "name"), []byte("k10temp\n"), 0o644)
	assert.NoError(t, err)
	c := gosensors.Chip{Path: devicePath}

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, "k10temp", result)
}

func TestFindPlatform(t *testing.T) {
	// GIVEN
	nvmePath := "/sys/devices/pci0000:00/0000:00:0e.0/pci10000:e0/10000:e0:06.0/10000:e1:00.0/nvme/nvme0/hwmon3"
	platformPath := "/sys/devices/platform/coretemp.0/hwmon/hwmon2"

	// WHEN
	nvme := findPlatform(nvmePath)
	platform := findPlatform(platformPath)

	// THEN
	assert.Equal(t, "", nvme)
	assert.Equal(t, "/sys/devices/platform/coretemp.0", platform)
}

func TestGetLabel(t *testing.T) {
	// GIVEN
	devicePath := t.TempDir()
	err := os.WriteFile(filepath.Join(devicePath, "temp1_label"), []byte("Package id 0\n"), 0o644)
	assert.NoError(t, err)

	// WHEN
	label := getLabel(devicePath, "temp1_input")
	fallback := getLabel(devicePath, "temp2_input")

	// THEN
	assert.Equal(t, "Package id 0", label)
	assert.Equal(t, "temp2_input", fallback)
}

func TestFindTempInput(t *testing.T) {
	controllers := []*HwMonController{
		{
			Name:     "coretemp-isa-0000",
			Platform: "/sys/devices/platform/coretemp.0",
			Sensors: []TempInput{
				{Index: 1, Input: "/sys/hwmon2/temp1_input"},
				{Index: 2, Input: "/sys/hwmon2/temp2_input"},
			},
		},
		{
			Name:     "nvme-pci-0500",
			Platform: "nvme-pci-0500",
			Sensors: []TempInput{
				{Index: 1, Input: "/sys/hwmon3/temp1_input"},
			},
		},
	}

	var tests = []struct {
		tn      string
		config  configuration.HwMonSensorConfig
		want    string
		wantErr bool
	}{
		{tn: "platform and index", config: configuration.HwMonSensorConfig{Platform: "coretemp", Index: 2}, want: "/sys/hwmon2/temp2_input"},
		{tn: "case insensitive", config: configuration.HwMonSensorConfig{Platform: "NVME", Index: 1}, want: "/sys/hwmon3/temp1_input"},
		{tn: "explicit input", config: configuration.HwMonSensorConfig{TempInput: "/sys/hwmon9/temp1_input"}, want: "/sys/hwmon9/temp1_input"},
		{tn: "no matching index", config: configuration.HwMonSensorConfig{Platform: "nvme", Index: 3}, wantErr: true},
		{tn: "no matching platform", config: configuration.HwMonSensorConfig{Platform: "k10temp", Index: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tn, func(t *testing.T) {
			// WHEN
			result, err := FindTempInput(controllers, tt.config)

			// THEN
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrNoMatchingSensor))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}
