package controller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/markusressel/fuzzy2go/internal/actuators"
	"github.com/markusressel/fuzzy2go/internal/control_loop"
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/persistence"
	"github.com/markusressel/fuzzy2go/internal/sensors"
	"github.com/markusressel/fuzzy2go/internal/systems"
	"github.com/markusressel/fuzzy2go/internal/ui"
)

type SystemController interface {
	Run(ctx context.Context) error
	// Cycle reads all bound sensors, evaluates the system once and
	// applies the outputs to all bound actuators
	Cycle() (fuzzy.Result, error)
}

type systemController struct {
	persistence persistence.Persistence
	system      *systems.System
	updateRate  time.Duration

	// input variable -> sensor
	sensors map[string]sensors.Sensor
	// output variable -> actuators
	actuators map[string][]actuators.Actuator
	// output variable -> actuator id -> loop
	loops map[string]map[string]control_loop.ControlLoop
}

// NewSystemController binds every input variable of the system to its sensor
// and every output variable to its actuators. All input variables need a sensor.
func NewSystemController(
	persistence persistence.Persistence,
	system *systems.System,
	sensorMap map[string]sensors.Sensor,
	actuatorMap map[string]actuators.Actuator,
	updateRate time.Duration,
) (SystemController, error) {
	config := system.GetConfig()
	c := &systemController{
		persistence: persistence,
		system:      system,
		updateRate:  updateRate,
		sensors:     map[string]sensors.Sensor{},
		actuators:   map[string][]actuators.Actuator{},
		loops:       map[string]map[string]control_loop.ControlLoop{},
	}

	inputs, _ := system.Variables()
	for _, input := range inputs {
		inputConfig, ok := config.FindInput(input.Name)
		if !ok || len(inputConfig.Sensor) <= 0 {
			return nil, fmt.Errorf("system %s: no sensor bound to input %s", config.ID, input.Name)
		}
		sensor, ok := sensorMap[inputConfig.Sensor]
		if !ok {
			return nil, fmt.Errorf("system %s: sensor %s of input %s not found", config.ID, inputConfig.Sensor, input.Name)
		}
		c.sensors[input.Name] = sensor
	}

	for _, outputConfig := range config.Outputs {
		for _, actuatorId := range outputConfig.Actuators {
			actuator, ok := actuatorMap[actuatorId]
			if !ok {
				return nil, fmt.Errorf("system %s: actuator %s of output %s not found", config.ID, actuatorId, outputConfig.Name)
			}
			c.actuators[outputConfig.Name] = append(c.actuators[outputConfig.Name], actuator)
			if c.loops[outputConfig.Name] == nil {
				c.loops[outputConfig.Name] = map[string]control_loop.ControlLoop{}
			}
			c.loops[outputConfig.Name][actuator.GetId()] = control_loop.NewDirectControlLoop(actuator.GetConfig().MaxChangePerCycle)
		}
	}

	return c, nil
}

func (c *systemController) Run(ctx context.Context) error {
	ui.Info("Starting controller loop for system '%s'", c.system.GetId())

	tick := time.NewTicker(c.updateRate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping controller loop for system '%s'", c.system.GetId())
			return nil
		case <-tick.C:
			_, err := c.Cycle()
			if err != nil {
				ui.Error("Error in controller of system %s: %v", c.system.GetId(), err)
			}
		}
	}
}

func (c *systemController) Cycle() (fuzzy.Result, error) {
	inputs := make(map[string]int, len(c.sensors))
	for name, sensor := range c.sensors {
		inputs[name] = sensors.Normalize(sensor.GetConfig(), sensor.GetMovingAvg())
	}

	result, err := c.system.Evaluate(inputs)
	if err != nil {
		return fuzzy.Result{}, err
	}

	for _, diagnostic := range result.Diagnostics {
		ui.Warning("System %s, cycle %d: %s", c.system.GetId(), result.Cycle, diagnostic.Message)
	}

	err = c.applyOutputs(result)

	if c.persistence != nil {
		if perr := c.persistence.SaveRecord(c.system.GetId(), persistence.NewRecord(time.Now(), result)); perr != nil {
			ui.Warning("Unable to save history of system %s: %v", c.system.GetId(), perr)
		}
	}

	return result, err
}

func (c *systemController) applyOutputs(result fuzzy.Result) error {
	var errs []error
	for name, outputActuators := range c.actuators {
		value, ok := result.Output(name)
		if !ok {
			continue
		}
		for _, actuator := range outputActuators {
			applied := int(math.Round(c.loops[name][actuator.GetId()].Cycle(float64(value))))
			ui.Debug("Setting %s of system %s to %d on %s", name, c.system.GetId(), applied, actuator.GetId())
			if err := actuator.SetValue(applied); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
