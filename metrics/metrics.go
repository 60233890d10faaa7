// Package metrics exposes Prometheus collectors for the trigger session.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "timelapse"

type Recorder struct {
	commands    *prometheus.CounterVec
	statusReads *prometheus.CounterVec
	triggers    prometheus.Gauge
	configured  prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg when reg is
// not nil.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_sent_total",
				Help:      "Commands written to the trigger controller",
			},
			[]string{"command"},
		),
		statusReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_reads_total",
				Help:      "INF round trips by outcome",
			},
			[]string{"result"},
		),
		triggers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "triggers_staged",
			Help:      "Triggers currently held by the session",
		}),
		configured: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_configured",
			Help:      "1 once the trigger sequence has been sent to the device",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.commands, r.statusReads, r.triggers, r.configured)
	}
	return r
}

func (r *Recorder) CommandSent(command string) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(command).Inc()
}

func (r *Recorder) StatusRead(received bool) {
	if r == nil {
		return
	}
	result := "empty"
	if received {
		result = "received"
	}
	r.statusReads.WithLabelValues(result).Inc()
}

func (r *Recorder) TriggersStaged(n int) {
	if r == nil {
		return
	}
	r.triggers.Set(float64(n))
}

func (r *Recorder) Configured(ok bool) {
	if r == nil {
		return
	}
	if ok {
		r.configured.Set(1)
		return
	}
	r.configured.Set(0)
}
