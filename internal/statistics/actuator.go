package statistics

import (
	"github.com/markusressel/fuzzy2go/internal/actuators"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemActuator = "actuator"

type ActuatorCollector struct {
	actuators []actuators.Actuator
	value     *prometheus.Desc
}

func NewActuatorCollector(actuators []actuators.Actuator) *ActuatorCollector {
	return &ActuatorCollector{
		actuators: actuators,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemActuator, "value"),
			"Last value applied to the actuator",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ActuatorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *ActuatorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, actuator := range collector.actuators {
		value := actuator.GetLastSetValue()
		if value == actuators.InitialLastSetValue {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, float64(value), actuator.GetId())
	}
}
