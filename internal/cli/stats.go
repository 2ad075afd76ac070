package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// WriteStats prints every counter and histogram gathered from g, one per
// line, skipping series that never moved.
func WriteStats(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}

	var out []string
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			name := family.GetName() + labelString(metric.GetLabel())
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				if v := metric.GetCounter().GetValue(); v != 0 {
					out = append(out, fmt.Sprintf("%s %g", name, v))
				}
			case dto.MetricType_HISTOGRAM:
				h := metric.GetHistogram()
				if h.GetSampleCount() == 0 {
					continue
				}
				out = append(out, fmt.Sprintf("%s count=%d sum=%.3fs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(out)
	for _, line := range out {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func labelString(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", label.GetName(), label.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
