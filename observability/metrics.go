package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forum"

// Metrics groups every Prometheus collector of the fan-out layer.
// A nil *Metrics is valid and records nothing, which keeps tests free of registries.
type Metrics struct {
	liveChannels         prometheus.Gauge
	liveSubscribers      prometheus.Gauge
	eventsPublished      *prometheus.CounterVec
	deliveriesFailed     *prometheus.CounterVec
	notificationsCreated *prometheus.CounterVec
	notificationsFailed  *prometheus.CounterVec
	jobsDropped          prometheus.Counter
	queueLength          *prometheus.GaugeVec
	queueCapacity        *prometheus.GaugeVec
	processCPU           prometheus.Gauge
	processRSS           prometheus.Gauge
	HTTPDuration         *prometheus.HistogramVec
	HTTPRequests         *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		liveChannels: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "live_channels",
			Help: "Channels with at least one live subscriber.",
		}),
		liveSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "live_subscribers",
			Help: "Live subscribers across all channels.",
		}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "events_published_total",
			Help: "Events published to a channel, by event name.",
		}, []string{"event"}),
		deliveriesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "deliveries_failed_total",
			Help: "Deliveries that failed and evicted their subscriber.",
		}, []string{"event"}),
		notificationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_created_total",
			Help: "Durable notifications written by fan-out, by path.",
		}, []string{"path"}),
		notificationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_failed_total",
			Help: "Notifications skipped after a store failure, by path.",
		}, []string{"path"}),
		jobsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "notification_jobs_dropped_total",
			Help: "Notification jobs dropped because the queue was full.",
		}),
		queueLength: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "queue_length",
			Help: "Sampled length of internal queues.",
		}, []string{"queue"}),
		queueCapacity: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "queue_capacity",
			Help: "Capacity of internal queues.",
		}, []string{"queue"}),
		processCPU: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "process_cpu_percent",
			Help: "CPU usage of the server process.",
		}),
		processRSS: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "process_rss_bytes",
			Help: "Resident memory of the server process.",
		}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method", "status"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"path", "method", "status"}),
	}
}

func (m *Metrics) SetLive(channels, subscribers int) {
	if m == nil {
		return
	}
	m.liveChannels.Set(float64(channels))
	m.liveSubscribers.Set(float64(subscribers))
}

func (m *Metrics) EventPublished(name string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(name).Inc()
}

func (m *Metrics) DeliveryFailed(name string) {
	if m == nil {
		return
	}
	m.deliveriesFailed.WithLabelValues(name).Inc()
}

func (m *Metrics) NotificationCreated(path string) {
	if m == nil {
		return
	}
	m.notificationsCreated.WithLabelValues(path).Inc()
}

func (m *Metrics) NotificationFailed(path string) {
	if m == nil {
		return
	}
	m.notificationsFailed.WithLabelValues(path).Inc()
}

func (m *Metrics) JobDropped() {
	if m == nil {
		return
	}
	m.jobsDropped.Inc()
}

func (m *Metrics) SetQueue(name string, length, capacity int) {
	if m == nil {
		return
	}
	m.queueLength.WithLabelValues(name).Set(float64(length))
	m.queueCapacity.WithLabelValues(name).Set(float64(capacity))
}

func (m *Metrics) SetProcess(cpuPercent float64, rssBytes uint64) {
	if m == nil {
		return
	}
	m.processCPU.Set(cpuPercent)
	m.processRSS.Set(float64(rssBytes))
}
