package statistics

import (
	"github.com/markusressel/fuzzy2go/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	sensors    []sensors.Sensor
	value      *prometheus.Desc
	normalized *prometheus.Desc
}

func NewSensorCollector(sensors []sensors.Sensor) *SensorCollector {
	return &SensorCollector{
		sensors: sensors,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Moving average of the raw sensor value",
			[]string{"id"}, nil,
		),
		normalized: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "normalized_value"),
			"Moving average of the sensor mapped onto the value range of the engine",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.normalized
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.sensors {
		sensorId := sensor.GetId()
		avg := sensor.GetMovingAvg()
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, avg, sensorId)
		ch <- prometheus.MustNewConstMetric(collector.normalized, prometheus.GaugeValue, float64(sensors.Normalize(sensor.GetConfig(), avg)), sensorId)
	}
}
