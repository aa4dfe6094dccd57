package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveProviderCall("chat", time.Now(), nil)
	m.ObserveProviderCall("chat", time.Now(), errors.New("boom"))
	m.RecordNode("author", "persisted")
	m.RecordArtifact("author", "written")
	m.RecordArtifact("author", "written")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerCalls.WithLabelValues("chat", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerCalls.WithLabelValues("chat", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cascadeNodes.WithLabelValues("author", "persisted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.artifacts.WithLabelValues("author", "written")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveProviderCall("image", time.Now(), nil)
		m.RecordNode("book", "aborted")
		m.RecordArtifact("book", "hit")
	})
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}
