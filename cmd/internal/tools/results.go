package tools

import (
	"fmt"

	"github.com/nathanhack/squareparity/benchmarking"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	MetricCorrupted  = "corrupted"
	MetricDetected   = "detected"
	MetricUndetected = "undetected"
	MetricFalseAlarm = "falsealarm"
)

// MetricValue returns the mean of the named metric
func MetricValue(s benchmarking.Stats, metric string) (float64, error) {
	switch metric {
	case MetricCorrupted:
		return s.ChannelCorruption.Mean, nil
	case MetricDetected:
		return s.Detected.Mean, nil
	case MetricUndetected:
		return s.Undetected.Mean, nil
	case MetricFalseAlarm:
		return s.FalseAlarm.Mean, nil
	}
	return 0, fmt.Errorf("unknown metric %q expected one of %v", metric, []string{MetricCorrupted, MetricDetected, MetricUndetected, MetricFalseAlarm})
}

// LoadAllResults loads every results file, failing on the first missing or
// unreadable one, and returns the union of their channel parameters sorted.
func LoadAllResults(files []string) ([]*SimulationStats, []float64, error) {
	stats := make([]*SimulationStats, len(files))
	parameters := make(map[float64]bool)
	for i, resultFile := range files {
		s, err := LoadResults(resultFile)
		if err != nil {
			return nil, nil, err
		}
		if s == nil {
			return nil, nil, fmt.Errorf("results file %v does not exist", resultFile)
		}
		for p := range s.Stats {
			parameters[p] = true
		}
		stats[i] = s
	}

	sorted := maps.Keys(parameters)
	slices.Sort(sorted)
	return stats, sorted, nil
}
