package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	dto "github.com/prometheus/client_model/go"
)

const (
	requestsMetric = "storefront_api_requests_total"
	durationMetric = "storefront_api_request_duration_seconds"
)

// stats prints request counts by endpoint and status, and mean latency.
func (s *Shell) stats(_ context.Context, _ []string) error {
	if s.metrics == nil {
		return errors.New("metrics are disabled")
	}
	families, err := s.metrics.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	latency := map[string]float64{}
	var counts []*dto.Metric
	for _, mf := range families {
		switch mf.GetName() {
		case requestsMetric:
			counts = mf.GetMetric()
		case durationMetric:
			for _, m := range mf.GetMetric() {
				h := m.GetHistogram()
				if h.GetSampleCount() > 0 {
					latency[label(m, "endpoint")] = h.GetSampleSum() / float64(h.GetSampleCount())
				}
			}
		}
	}
	if len(counts) == 0 {
		fmt.Fprintln(s.out, "No requests yet")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDPOINT\tCODE\tCOUNT\tMEAN")
	for _, m := range counts {
		endpoint := label(m, "endpoint")
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.1fms\n",
			endpoint, label(m, "code"), m.GetCounter().GetValue(), latency[endpoint]*1000)
	}
	return tw.Flush()
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if strings.EqualFold(lp.GetName(), name) {
			return lp.GetValue()
		}
	}
	return ""
}
