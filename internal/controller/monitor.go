package controller

import (
	"context"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/fuzzy2go/internal/sensors"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/markusressel/fuzzy2go/internal/util"
)

type SensorMonitor interface {
	Run(ctx context.Context) error
}

type sensorMonitor struct {
	sensor      sensors.Sensor
	pollingRate time.Duration
	windowSize  int
	window      *rolling.PointPolicy
	// filled is set once the window holds real samples only
	filled bool
}

func NewSensorMonitor(sensor sensors.Sensor, pollingRate time.Duration, windowSize int) SensorMonitor {
	windowSize = max(windowSize, 1)
	return &sensorMonitor{
		sensor:      sensor,
		pollingRate: pollingRate,
		windowSize:  windowSize,
		window:      util.CreateRollingWindow(windowSize),
	}
}

func (s *sensorMonitor) Run(ctx context.Context) error {
	tick := time.NewTicker(s.pollingRate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			err := s.updateSensor()
			if err != nil {
				ui.Warning("Error reading sensor %s: %v", s.sensor.GetId(), err)
			}
		}
	}
}

// read the current value of a sensor and append it to the moving window
func (s *sensorMonitor) updateSensor() error {
	value, err := s.sensor.GetValue()
	if err != nil {
		return err
	}

	if !s.filled {
		// the first sample replaces the empty buckets of the window
		util.FillWindow(s.window, s.windowSize, value)
		s.filled = true
	} else {
		s.window.Append(value)
	}
	s.sensor.SetMovingAvg(util.GetWindowAvg(s.window))
	return nil
}
