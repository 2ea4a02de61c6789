package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, m.Write(&pb))
	if pb.Counter != nil {
		return pb.Counter.GetValue()
	}
	return pb.Gauge.GetValue()
}

func TestStoreMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "test")

	m.ObserveStoreOp("patient", "create", nil)
	m.ObserveStoreOp("patient", "create", nil)
	m.ObserveStoreOp("patient", "get", errors.New("missing"))
	m.SetRecords("patient", 4)

	assert.Equal(t, 2.0, value(t, m.StoreOperations.WithLabelValues("patient", "create", "success")))
	assert.Equal(t, 1.0, value(t, m.StoreOperations.WithLabelValues("patient", "get", "error")))
	assert.Equal(t, 4.0, value(t, m.StoreRecords.WithLabelValues("patient")))
}

func TestEventAndHTTPMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry(), "test")

	m.EventPublished("PATIENT_CREATE")
	m.EventFailed("PATIENT_DELETE")
	m.ObserveHTTP("GET", "/health", 200, time.Millisecond)
	m.ObserveBroker("publish", time.Now(), nil)

	assert.Equal(t, 1.0, value(t, m.EventsPublished.WithLabelValues("PATIENT_CREATE")))
	assert.Equal(t, 1.0, value(t, m.EventsFailed.WithLabelValues("PATIENT_DELETE")))
	assert.Equal(t, 1.0, value(t, m.HTTPRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, value(t, m.BrokerOperations.WithLabelValues("publish", "success")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveStoreOp("patient", "list", nil)
		m.SetRecords("patient", 1)
		m.EventPublished("X")
		m.EventFailed("X")
		m.ObserveHTTP("GET", "/", 200, 0)
		m.ObserveBroker("publish", time.Now(), nil)
	})
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry(), "test")
		NewMetrics(prometheus.NewRegistry(), "test")
	})
}
