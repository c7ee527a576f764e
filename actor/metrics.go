package actor

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine-level prometheus instrumentation: counters
// for send/call/broadcast outcomes and a gauge for live worker count.
type Metrics struct {
	sendTotal      *prometheus.CounterVec
	callTotal      *prometheus.CounterVec
	broadcastTotal *prometheus.CounterVec
	workersLive    prometheus.Gauge
}

// NewMetrics builds a Metrics bundle and, if reg is non-nil, registers it.
// Pass nil to build an unregistered bundle (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "actorcore",
			Name:      "send_total",
			Help:      "Total Send calls by outcome.",
		}, []string{"result"}),
		callTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "actorcore",
			Name:      "call_total",
			Help:      "Total Call invocations by outcome.",
		}, []string{"result"}),
		broadcastTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "actorcore",
			Name:      "broadcast_total",
			Help:      "Total Broadcast invocations by outcome.",
		}, []string{"result"}),
		workersLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "actorcore",
			Name:      "workers_live",
			Help:      "Number of workers currently spawned and running.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.sendTotal, m.callTotal, m.broadcastTotal, m.workersLive)
	}

	return m
}

func (m *Metrics) recordSend(err error) {
	m.sendTotal.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) recordCall(err error) {
	m.callTotal.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) recordBroadcast(err error) {
	m.broadcastTotal.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) workerSpawned() {
	m.workersLive.Inc()
}

func (m *Metrics) allWorkersStopped() {
	m.workersLive.Set(0)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrActorNotFound):
		return "actor_not_found"
	case errors.Is(err, ErrMailboxFull):
		return "mailbox_full"
	case errors.Is(err, ErrNoResponse):
		return "no_response"
	case errors.Is(err, ErrSelfCallDeadlock):
		return "self_call_deadlock"
	default:
		return "error"
	}
}
