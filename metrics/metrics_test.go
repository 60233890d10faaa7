package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.CommandSent("SET")
	r.CommandSent("SET")
	r.CommandSent("ACQ")
	r.StatusRead(true)
	r.StatusRead(false)
	r.StatusRead(false)
	r.TriggersStaged(3)
	r.Configured(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.commands.WithLabelValues("SET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.commands.WithLabelValues("ACQ")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.statusReads.WithLabelValues("received")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.statusReads.WithLabelValues("empty")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.triggers))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.configured))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.CommandSent("INF")
		r.StatusRead(true)
		r.TriggersStaged(1)
		r.Configured(false)
	})
}
