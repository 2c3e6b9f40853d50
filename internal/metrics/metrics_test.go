package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestInitializeMetrics(t *testing.T) {
	// Must be callable repeatedly without panicking on duplicate labels.
	InitializeMetrics()
	InitializeMetrics()
}

func TestCounterIncrements(t *testing.T) {
	before := counterValue(t, CrawlerFilesDiscovered)
	CrawlerFilesDiscovered.Inc()
	after := counterValue(t, CrawlerFilesDiscovered)

	if after != before+1 {
		t.Errorf("CrawlerFilesDiscovered = %v after Inc, want %v", after, before+1)
	}
}

func TestVecLabels(t *testing.T) {
	c := IngestResultsTotal.WithLabelValues("imported")
	before := counterValue(t, c)
	c.Inc()
	if got := counterValue(t, c); got != before+1 {
		t.Errorf("IngestResultsTotal{imported} = %v, want %v", got, before+1)
	}
}
