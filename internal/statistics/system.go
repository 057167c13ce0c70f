package statistics

import (
	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/systems"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSystem = "system"

type SystemCollector struct {
	systems []*systems.System

	cycles   *prometheus.Desc
	failures *prometheus.Desc
	noMatch  *prometheus.Desc
	zeroArea *prometheus.Desc
	output   *prometheus.Desc
	degree   *prometheus.Desc
}

func NewSystemCollector(systems []*systems.System) *SystemCollector {
	return &SystemCollector{
		systems: systems,
		cycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSystem, "cycles_total"),
			"Number of completed inference cycles",
			[]string{"id"}, nil,
		),
		failures: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSystem, "failures_total"),
			"Number of inference cycles rejected because of invalid inputs",
			[]string{"id"}, nil,
		),
		noMatch: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSystem, "no_match_total"),
			"Number of cycles in which no rule fired",
			[]string{"id"}, nil,
		),
		zeroArea: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSystem, "zero_area_total"),
			"Number of output variables that defaulted to 0 because of a zero area",
			[]string{"id"}, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSystem, "output_value"),
			"Crisp value of an output variable after the last cycle",
			[]string{"id", "variable"}, nil,
		),
		degree: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSystem, "term_degree"),
			"Degree of membership of a term after the last cycle",
			[]string{"id", "variable", "term"}, nil,
		),
	}
}

func (collector *SystemCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.cycles
	ch <- collector.failures
	ch <- collector.noMatch
	ch <- collector.zeroArea
	ch <- collector.output
	ch <- collector.degree
}

// Collect implements required collect function for all prometheus collectors
func (collector *SystemCollector) Collect(ch chan<- prometheus.Metric) {
	for _, system := range collector.systems {
		systemId := system.GetId()
		stats := system.Stats()
		ch <- prometheus.MustNewConstMetric(collector.cycles, prometheus.CounterValue, float64(stats.Cycles), systemId)
		ch <- prometheus.MustNewConstMetric(collector.failures, prometheus.CounterValue, float64(stats.Failures), systemId)
		ch <- prometheus.MustNewConstMetric(collector.noMatch, prometheus.CounterValue, float64(stats.NoMatch), systemId)
		ch <- prometheus.MustNewConstMetric(collector.zeroArea, prometheus.CounterValue, float64(stats.ZeroArea), systemId)

		result, _, ok := system.LastResult()
		if !ok {
			continue
		}
		for _, output := range result.Outputs {
			if output.Valid {
				ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, float64(output.Value), systemId, output.Name)
			}
		}
		for _, variables := range [][]fuzzy.VariableSnapshot{result.Inputs, result.Outputs} {
			for _, variable := range variables {
				for _, term := range variable.Terms {
					ch <- prometheus.MustNewConstMetric(collector.degree, prometheus.GaugeValue, float64(variable.Degrees[term]), systemId, variable.Name, term)
				}
			}
		}
	}
}
