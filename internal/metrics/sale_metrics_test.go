package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewSaleMetrics(t *testing.T) {
	metrics := NewSaleMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics.operations == nil {
		t.Error("operations counter vec should not be nil")
	}
	if metrics.duration == nil {
		t.Error("duration histogram vec should not be nil")
	}
}

func TestObserveOperation(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewSaleMetricsWithRegisterer(registry)

	metrics.ObserveOperation("create", "ok", 20*time.Millisecond)
	metrics.ObserveOperation("create", "ok", 30*time.Millisecond)
	metrics.ObserveOperation("create", "field_null", time.Millisecond)

	var counter dto.Metric
	if err := metrics.operations.WithLabelValues("create", "ok").Write(&counter); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := counter.GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 successful creates, got %v", got)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var histogram *dto.Histogram
	for _, family := range families {
		if family.GetName() != "sales_operation_duration_seconds" {
			continue
		}
		for _, m := range family.GetMetric() {
			histogram = m.GetHistogram()
		}
	}
	if histogram == nil {
		t.Fatal("duration histogram was not gathered")
	}
	if histogram.GetSampleCount() != 3 {
		t.Fatalf("expected 3 samples, got %d", histogram.GetSampleCount())
	}
}

func TestNewSaleMetrics_ReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := NewSaleMetricsWithRegisterer(registry)
	second := NewSaleMetricsWithRegisterer(registry)

	first.ObserveOperation("find", "ok", time.Millisecond)

	var counter dto.Metric
	if err := second.operations.WithLabelValues("find", "ok").Write(&counter); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := counter.GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected shared counter value 1, got %v", got)
	}
}

func TestRegister_PanicsOnTypeMismatch(t *testing.T) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_operations_total",
		Help: "Total number of sale operations by outcome",
	}))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on conflicting collector")
		}
	}()
	NewSaleMetricsWithRegisterer(registry)
}
