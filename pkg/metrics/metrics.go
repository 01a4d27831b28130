// Package metrics exposes dashboard figures as Prometheus gauges. The CLI
// is short lived, so they are written to a node_exporter textfile instead
// of being served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/harrisonrobin/studydesk/pkg/dashboard"
)

const namespace = "studydesk"

type Recorder struct {
	reg *prometheus.Registry

	Records      *prometheus.GaugeVec
	Pending      prometheus.Gauge
	Overdue      prometheus.Gauge
	Upcoming     prometheus.Gauge
	Productivity prometheus.Gauge
	FocusSeconds *prometheus.CounterVec
	LastRun      prometheus.Gauge
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		reg: reg,
		Records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "records",
				Help:      "Number of stored records per collection",
			},
			[]string{"collection"},
		),
		Pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_pending",
			Help:      "Tasks not yet completed",
		}),
		Overdue: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_overdue",
			Help:      "Pending tasks past their due date",
		}),
		Upcoming: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_upcoming",
			Help:      "Events dated today or later",
		}),
		Productivity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "productivity_score",
			Help:      "Dashboard productivity score (0-100)",
		}),
		FocusSeconds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "focus_seconds_total",
				Help:      "Seconds spent in timer sessions, by timer kind",
			},
			[]string{"kind"},
		),
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last command that updated these metrics",
		}),
	}
}

// Observe records a dashboard snapshot.
func (r *Recorder) Observe(s dashboard.Stats, now time.Time) {
	r.Records.WithLabelValues("notes").Set(float64(s.Resources))
	r.Pending.Set(float64(s.Pending))
	r.Overdue.Set(float64(s.Overdue))
	r.Upcoming.Set(float64(s.Upcoming))
	r.Productivity.Set(float64(s.Productivity))
	r.LastRun.Set(float64(now.Unix()))
}

func (r *Recorder) SetRecords(collection string, n int) {
	r.Records.WithLabelValues(collection).Set(float64(n))
}

func (r *Recorder) AddFocus(kind string, d time.Duration) {
	if d > 0 {
		r.FocusSeconds.WithLabelValues(kind).Add(d.Seconds())
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteTextfile replaces path with the current metric values.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
