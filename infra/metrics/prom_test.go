package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/tqsched/tq/core/metrics"
)

func TestPromSinkRecordPlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	ev := coremetrics.PlanEvent{
		Time:        time.Now(),
		Days:        4,
		Tasks:       3,
		BookedHours: 7.1,
		Duration:    5 * time.Millisecond,
	}
	require.NoError(t, sink.RecordPlan(ev))

	assert.Equal(t, float64(1), testutil.ToFloat64(sink.runs.WithLabelValues("ok")))
	assert.Equal(t, float64(4), testutil.ToFloat64(sink.days))
	assert.Equal(t, float64(3), testutil.ToFloat64(sink.tasks))
	assert.InDelta(t, 7.1, testutil.ToFloat64(sink.booked), 1e-9)
}

func TestPromSinkRecordsFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordPlan(coremetrics.PlanEvent{Err: errors.New("boom")}))
	assert.Equal(t, float64(1), testutil.ToFloat64(sink.runs.WithLabelValues("error")))
	assert.Equal(t, float64(0), testutil.ToFloat64(sink.days), "gauges keep last good run")
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	_, err = NewPromSinkWithRegistry(reg)
	assert.NoError(t, err, "re-registration must reuse existing collectors")
}
