package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// MonitoringStats is the latest snapshot exposed by the debug server.
type MonitoringStats struct {
	LiveChannels    int     `json:"live_channels"`
	LiveSubscribers int     `json:"live_subscribers"`
	QueueLength     int     `json:"queue_length"`
	QueueCapacity   int     `json:"queue_capacity"`
	ProcessCPU      float64 `json:"process_cpu_percent"`
	ProcessRSSMb    uint64  `json:"process_rss_mb"`
	AllocMemMb      uint64  `json:"alloc_mem_mb"`
	NumGC           uint32  `json:"num_gc"`
	UpdatedAt       string  `json:"updated_at"`
}

// MonitoringManager keeps the latest stats snapshot and mirrors it into Prometheus.
type MonitoringManager struct {
	log         *slog.Logger
	metrics     *Metrics
	mu          sync.RWMutex
	latestStats MonitoringStats
}

func NewMonitoringManager(log *slog.Logger, metrics *Metrics) *MonitoringManager {
	return &MonitoringManager{log: log, metrics: metrics}
}

func (mm *MonitoringManager) Metrics() *Metrics {
	if mm == nil {
		return nil
	}
	return mm.metrics
}

func (mm *MonitoringManager) UpdateLive(channels, subscribers int) {
	mm.mu.Lock()
	mm.latestStats.LiveChannels = channels
	mm.latestStats.LiveSubscribers = subscribers
	mm.touch()
	mm.mu.Unlock()
	mm.metrics.SetLive(channels, subscribers)
}

func (mm *MonitoringManager) UpdateQueue(name string, length, capacity int) {
	mm.mu.Lock()
	mm.latestStats.QueueLength = length
	mm.latestStats.QueueCapacity = capacity
	mm.touch()
	mm.mu.Unlock()
	mm.metrics.SetQueue(name, length, capacity)
}

func (mm *MonitoringManager) UpdateProcess(cpuPercent float64, rssBytes uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mm.mu.Lock()
	mm.latestStats.ProcessCPU = cpuPercent
	mm.latestStats.ProcessRSSMb = rssBytes / 1024 / 1024
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC
	mm.touch()
	stats := mm.latestStats
	mm.mu.Unlock()

	mm.metrics.SetProcess(cpuPercent, rssBytes)
	mm.log.Debug("Process stats updated",
		"cpu_percent", stats.ProcessCPU,
		"rss_mb", stats.ProcessRSSMb,
		"alloc_mb", stats.AllocMemMb,
	)
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latestStats
}

// touch must be called with mu held.
func (mm *MonitoringManager) touch() {
	mm.latestStats.UpdatedAt = time.Now().Format("15:04:05")
}
