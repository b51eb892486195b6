package monitor

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	PlayersConnected prometheus.Gauge
	PlayersAlive     prometheus.Gauge
	FramesReceived   prometheus.Counter
	RoundsPlayed     prometheus.Counter
	RemoteReplyTime  prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		PlayersConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_connected",
			Help:      "Number of connected remote players",
		}),
		PlayersAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_alive",
			Help:      "Number of players still in the game",
		}),
		FramesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Total number of frames received from remote players",
		}),
		RoundsPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_played_total",
			Help:      "Total number of completed rounds",
		}),
		RemoteReplyTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_reply_seconds",
			Help:      "Time remote players take to answer a prompt",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}

	prometheus.MustRegister(
		m.PlayersConnected,
		m.PlayersAlive,
		m.FramesReceived,
		m.RoundsPlayed,
		m.RemoteReplyTime,
	)

	return m
}

type Monitor struct {
	metrics    *Metrics
	startTime  time.Time
	frameCount int64
	mutex      sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	expvar.Publish("frames", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.frameCount
	}))

	go http.ListenAndServe(addr, nil)
}

func (m *Monitor) IncPlayersConnected() {
	m.metrics.PlayersConnected.Inc()
}

func (m *Monitor) DecPlayersConnected() {
	m.metrics.PlayersConnected.Dec()
}

func (m *Monitor) SetPlayersAlive(count int) {
	m.metrics.PlayersAlive.Set(float64(count))
}

func (m *Monitor) IncFramesReceived() {
	m.metrics.FramesReceived.Inc()
	m.mutex.Lock()
	m.frameCount++
	m.mutex.Unlock()
}

func (m *Monitor) IncRoundsPlayed() {
	m.metrics.RoundsPlayed.Inc()
}

func (m *Monitor) ObserveRemoteReply(duration time.Duration) {
	m.metrics.RemoteReplyTime.Observe(duration.Seconds())
}
