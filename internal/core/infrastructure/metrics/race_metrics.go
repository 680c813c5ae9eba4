package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/weisyn/taskrace/pkg/utils/race"
)

// RaceMetrics 竞速与录制相关的 Prometheus 指标
type RaceMetrics struct {
	racesTotal       *prometheus.CounterVec
	raceDuration     *prometheus.HistogramVec
	failuresTotal    *prometheus.CounterVec
	snapshotsTotal   prometheus.Counter
	replayMismatches prometheus.Counter
}

var _ race.Observer = (*RaceMetrics)(nil)

// NewRaceMetrics 在给定注册表上创建并注册指标
func NewRaceMetrics(reg prometheus.Registerer) *RaceMetrics {
	factory := promauto.With(reg)
	return &RaceMetrics{
		racesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskrace",
				Subsystem: "race",
				Name:      "total",
				Help:      "Total number of races by label and outcome",
			},
			[]string{"label", "outcome"},
		),
		raceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskrace",
				Subsystem: "race",
				Name:      "duration_seconds",
				Help:      "Race duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"label"},
		),
		failuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskrace",
				Subsystem: "race",
				Name:      "operation_failures_total",
				Help:      "Total number of failed operations observed before a race returned",
			},
			[]string{"label"},
		),
		snapshotsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "taskrace",
			Subsystem: "replay",
			Name:      "snapshots_total",
			Help:      "Total number of captured snapshots",
		}),
		replayMismatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "taskrace",
			Subsystem: "replay",
			Name:      "mismatches_total",
			Help:      "Total number of replays that diverged from the recording",
		}),
	}
}

// ObserveRace 实现 race.Observer
func (m *RaceMetrics) ObserveRace(label string, outcome race.Outcome, elapsed time.Duration, failures int) {
	m.racesTotal.WithLabelValues(label, string(outcome)).Inc()
	m.raceDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	if failures > 0 {
		m.failuresTotal.WithLabelValues(label).Add(float64(failures))
	}
}

// SnapshotCaptured 记录一次快照捕获
func (m *RaceMetrics) SnapshotCaptured() { m.snapshotsTotal.Inc() }

// ReplayMismatch 记录一次回放不一致
func (m *RaceMetrics) ReplayMismatch() { m.replayMismatches.Inc() }
