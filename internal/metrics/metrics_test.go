package metrics_test

import (
	"context"
	"testing"

	"github.com/aretw0/errfix/internal/metrics"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/aretw0/errfix/pkg/model"
	"github.com/aretw0/errfix/pkg/replay"
	"github.com/aretw0/errfix/pkg/walk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	m, err := model.NewBuilder().Build([]domain.Transition{
		domain.NewTransition("A", "go", "B"),
		domain.NewTransition("B", "stop", "C"),
	})
	require.NoError(t, err)

	g := walk.New(walk.WithHooks(c.Hooks()))
	w, err := g.Generate(context.Background(), m, "A", 5, walk.FixedSource(0))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Walks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.DeadEnds.WithLabelValues("C")))

	driver := replay.NewRegistry().
		Verify("A", func(context.Context) error { return nil }).
		Verify("B", func(context.Context) error { return nil }).
		Verify("C", func(context.Context) error { return nil }).
		Action("go", func(context.Context) error { return nil }).
		Action("stop", func(context.Context) error { return nil })
	r := replay.NewReplayer(replay.WithHooks(c.Hooks()))
	require.NoError(t, r.Replay(context.Background(), w, driver))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Invocations.WithLabelValues("action", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Invocations.WithLabelValues("verify", "ok")))

	count, err := testutil.GatherAndCount(reg, "errfix_walk_steps")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
