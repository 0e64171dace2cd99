package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopTracerIsSafeToUse(t *testing.T) {
	tr := NewNoopTracer()
	ctx, finish := tr.StartProbeSpan(context.Background(), "Connection", "connect-ok")
	require.NotNil(t, ctx)
	finish("PASS", nil)
	finish("FAIL", errors.New("boom"))
	require.NoError(t, tr.Shutdown(context.Background()))
}

func TestStdoutTracerStartsAndEndsSpans(t *testing.T) {
	tr, err := NewStdoutTracer("odbccrusher-test")
	require.NoError(t, err)

	_, finish := tr.StartProbeSpan(context.Background(), "Statement", "execute-direct")
	finish("PASS", nil)

	_, finishFailed := tr.StartProbeSpan(context.Background(), "Statement", "execute-bad-sql")
	finishFailed("FAIL", errors.New("syntax error"))

	require.NoError(t, tr.Shutdown(context.Background()))
}

func TestNoopMetricsIsSafeToUse(t *testing.T) {
	m := NewNoopMetrics()
	m.ObserveResult("Connection", "PASS")
	require.NoError(t, m.Shutdown())
}
