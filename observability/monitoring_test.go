package observability

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMonitoringManager_UpdateLive(t *testing.T) {
	req := require.New(t)
	metrics := NewMetrics(prometheus.NewRegistry())
	mm := NewMonitoringManager(logs.GetLoggerFromLevel(slog.LevelDebug), metrics)

	mm.UpdateLive(2, 5)
	mm.UpdateQueue("notification_jobs", 3, 10)

	stats := mm.GetLatest()
	req.Equal(2, stats.LiveChannels)
	req.Equal(5, stats.LiveSubscribers)
	req.Equal(3, stats.QueueLength)
	req.Equal(10, stats.QueueCapacity)
	req.Equal(float64(5), testutil.ToFloat64(metrics.liveSubscribers))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.EventPublished("postCreated")
		m.DeliveryFailed("postCreated")
		m.NotificationCreated("room")
		m.NotificationFailed("reply")
		m.JobDropped()
		m.SetLive(1, 1)
		m.SetQueue("q", 1, 1)
		m.SetProcess(1, 1)
	})
}
