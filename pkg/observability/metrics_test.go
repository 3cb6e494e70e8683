package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsFactoryEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	f := cantype.NewFactory(cantype.WithHooks(m.Hooks()))

	f.Check(cantype.Number)
	f.Check(cantype.Number)
	f.Convert(cantype.Number)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Created.WithLabelValues("base")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Created.WithLabelValues("check")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Created.WithLabelValues("convert")))

	_, err := f.Check(cantype.Number).New("x")
	require.Error(t, err)
	_, err = f.Maybe(cantype.Number).New("y")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mismatches.WithLabelValues("check", "Number")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mismatches.WithLabelValues("maybe", "Number")))

	ok := f.Late(func() any { return cantype.String })
	bad := f.Late(func() any { return 42 })
	ok.Name()
	ok.Name()
	bad.Name()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("resolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("failed")))

	count, err := testutil.GatherAndCount(reg, "cantype_type_mismatches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_Unregistered(t *testing.T) {
	m := NewMetrics(nil)
	m.Hooks().OnCreate(&cantype.TypeEvent{Policy: "check"})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Created.WithLabelValues("check")))
}

func TestCombine(t *testing.T) {
	var calls []string
	a := cantype.Hooks{OnCreate: func(*cantype.TypeEvent) { calls = append(calls, "a") }}
	b := cantype.Hooks{
		OnCreate:   func(*cantype.TypeEvent) { calls = append(calls, "b") },
		OnMismatch: func(*cantype.TypeEvent) { calls = append(calls, "mismatch") },
	}

	h := Combine(a, b)
	h.OnCreate(&cantype.TypeEvent{})
	h.OnMismatch(&cantype.TypeEvent{})

	assert.Equal(t, []string{"a", "b", "mismatch"}, calls)
	assert.Nil(t, h.OnResolve)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)
	f := cantype.NewFactory(cantype.WithHooks(LogHooks(logger)))

	_, _ = f.Check(cantype.String).New(3)
	_ = f.Late(func() any { return "nope" }).Name()

	out := buf.String()
	assert.True(t, strings.Contains(out, "type_created"), out)
	assert.True(t, strings.Contains(out, "type_mismatch"), out)
	assert.True(t, strings.Contains(out, "err="), out)
}
