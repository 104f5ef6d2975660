package metrics

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// LogSummary gathers g and logs every sample at debug level
func LogSummary(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, family := range families {
		for _, m := range family.GetMetric() {
			args := []any{"name", family.GetName()}
			for _, label := range m.GetLabel() {
				args = append(args, label.GetName(), label.GetValue())
			}

			switch {
			case m.GetCounter() != nil:
				args = append(args, "value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				args = append(args, "value", m.GetGauge().GetValue())
			default:
				continue
			}
			slog.Debug("Metric", args...)
		}
	}

	return nil
}
