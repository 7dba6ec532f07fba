package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports widget-domain counters. A nil *Metrics is valid and
// counts nothing, so tests and embedders without a registry skip the
// wiring entirely.
type Metrics struct {
	pollsTotal   prometheus.Counter
	pollFailures prometheus.Counter
	messagesSent prometheus.Counter
}

// NewMetrics creates the widget counters and registers them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pollsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "widget_polls_total",
			Help: "Total number of conversation poll cycles",
		}),
		pollFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "widget_poll_failures_total",
			Help: "Total number of failed conversation polls",
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "widget_messages_sent_total",
			Help: "Total number of messages sent by the viewer",
		}),
	}

	reg.MustRegister(m.pollsTotal, m.pollFailures, m.messagesSent)
	return m
}

// CountPoll records one poll cycle and whether it failed.
func (m *Metrics) CountPoll(err error) {
	if m == nil {
		return
	}
	m.pollsTotal.Inc()
	if err != nil {
		m.pollFailures.Inc()
	}
}

// CountSend records one confirmed send.
func (m *Metrics) CountSend() {
	if m == nil {
		return
	}
	m.messagesSent.Inc()
}
