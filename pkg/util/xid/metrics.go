package xid

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/omeyang/xtypeid/xid"

	metricGenerated     = "xtypeid.xid.generated"
	metricClockAdjusted = "xtypeid.xid.clock_adjusted"
	metricErrors        = "xtypeid.xid.errors"

	attrReason = "reason"
)

// instruments 生成器指标。nil 表示未启用。
type instruments struct {
	generated metric.Int64Counter
	adjusted  metric.Int64Counter
	errors    metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)

	generated, err := meter.Int64Counter(
		metricGenerated,
		metric.WithDescription("identifiers generated"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xid: create counter %s failed: %w", metricGenerated, err)
	}

	adjusted, err := meter.Int64Counter(
		metricClockAdjusted,
		metric.WithDescription("identifiers whose timestamp was advanced past the wall clock reading"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xid: create counter %s failed: %w", metricClockAdjusted, err)
	}

	errs, err := meter.Int64Counter(
		metricErrors,
		metric.WithDescription("identifier generation failures"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xid: create counter %s failed: %w", metricErrors, err)
	}

	return &instruments{generated: generated, adjusted: adjusted, errors: errs}, nil
}

func (m *instruments) recordGenerated(adjusted bool) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.generated.Add(ctx, 1)
	if adjusted {
		m.adjusted.Add(ctx, 1)
	}
}

func (m *instruments) recordError(err error) {
	if m == nil {
		return
	}
	m.errors.Add(context.Background(), 1, metric.WithAttributes(attribute.String(attrReason, errorReason(err))))
}

// errorReason 将错误映射为低基数的指标属性值。
func errorReason(err error) string {
	switch {
	case errors.Is(err, ErrOverTimeLimit):
		return "over_time_limit"
	case errors.Is(err, ErrClockDrift):
		return "clock_drift"
	case errors.Is(err, ErrRandom):
		return "random"
	default:
		return "other"
	}
}
