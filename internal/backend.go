package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fuzzy2go/internal/actuators"
	"github.com/markusressel/fuzzy2go/internal/api"
	"github.com/markusressel/fuzzy2go/internal/configuration"
	"github.com/markusressel/fuzzy2go/internal/controller"
	"github.com/markusressel/fuzzy2go/internal/mqtt"
	"github.com/markusressel/fuzzy2go/internal/persistence"
	"github.com/markusressel/fuzzy2go/internal/sensors"
	"github.com/markusressel/fuzzy2go/internal/statistics"
	"github.com/markusressel/fuzzy2go/internal/systems"
	"github.com/markusressel/fuzzy2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath, config.HistorySize)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to open history database %s: %v", config.DbPath, err)
	}

	systemList, err := InitializeObjects()
	if err != nil {
		ui.NotifyError("fuzzy2go", "Invalid configuration: "+err.Error())
		ui.Fatal("Unable to initialize: %v", err)
	}
	if len(systemList) == 0 {
		ui.Fatal("No enabled system configurations, exiting.")
	}
	defer mqtt.SetShared(nil)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		port := config.Statistics.Port
		if port <= 0 || port >= 65535 {
			port = 9000
		}
		addServer(&g, "statistics", api.CreateStatisticsServer(prometheus.DefaultGatherer), fmt.Sprintf(":%d", port))
	}
	if config.Api.Enabled {
		// === REST Api
		rest := api.CreateRestService(prometheus.DefaultRegisterer)
		addServer(&g, "api", rest, fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port))
	}
	if config.Profiling.Enabled {
		// === pprof
		server := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", config.Profiling.Host, config.Profiling.Port),
			Handler: http.DefaultServeMux,
		}
		g.Add(func() error {
			ui.Info("Starting profiling webserver on %s", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			_ = server.Shutdown(timeoutCtx)
		})
	}
	{
		// === sensor monitoring
		for _, s := range sensors.SensorMap.Items() {
			sensor := s
			mon := controller.NewSensorMonitor(sensor, config.SensorPollingRate, config.SensorRollingWindowSize)

			g.Add(func() error {
				err := mon.Run(ctx)
				ui.Info("Sensor monitor for sensor %s stopped.", sensor.GetId())
				return err
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		// === system controllers
		sensorMap := sensors.SensorMap.Items()
		actuatorMap := actuators.ActuatorMap.Items()
		for _, s := range systemList {
			system := s
			systemController, err := controller.NewSystemController(pers, system, sensorMap, actuatorMap, config.ControllerTickRate)
			if err != nil {
				ui.Fatal("Unable to create controller: %v", err)
			}

			g.Add(func() error {
				err := systemController.Run(ctx)
				ui.Info("Controller for system %s stopped.", system.GetId())
				return err
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	ui.Info("Done.")
}

func addServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s webserver on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start %s webserver: %w", name, err)
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s webserver...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s webserver: %v", name, err)
		}
	})
}

// InitializeObjects creates all sensors, actuators and enabled systems
// of the current configuration and registers their statistics.
// Every problem is reported.
func InitializeObjects() ([]*systems.System, error) {
	var errs []error

	var sensorList []sensors.Sensor
	for _, config := range configuration.CurrentConfig.Sensors {
		sensor, err := sensors.NewSensor(config)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sensorList = append(sensorList, sensor)

		currentValue, err := sensor.GetValue()
		if err != nil {
			ui.Warning("Error reading sensor %s: %v", config.ID, err)
		}
		sensor.SetMovingAvg(currentValue)

		sensors.SensorMap.Set(config.ID, sensor)
	}

	var actuatorList []actuators.Actuator
	for _, config := range configuration.CurrentConfig.Actuators {
		actuator, err := actuators.NewActuator(config)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		actuatorList = append(actuatorList, actuator)
		actuators.ActuatorMap.Set(config.ID, actuator)
	}

	var systemList []*systems.System
	for _, config := range configuration.CurrentConfig.Systems {
		if !config.Enabled.Get() {
			ui.Info("System %s is disabled", config.ID)
			continue
		}
		system, err := systems.CreateSystem(config)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		systemList = append(systemList, system)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	statistics.Register(statistics.NewSensorCollector(sensorList))
	statistics.Register(statistics.NewActuatorCollector(actuatorList))
	statistics.Register(statistics.NewSystemCollector(systemList))

	return systemList, nil
}
