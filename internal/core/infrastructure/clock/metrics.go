package clock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HealthFunc 时钟健康读数，签名与 NTPClock.Health 一致
type HealthFunc func() (healthy bool, offset time.Duration, lastSync time.Time, lastError error)

// healthCollector 每次抓取时读取一次健康状态，不缓存
type healthCollector struct {
	read HealthFunc

	offset   *prometheus.Desc
	lastSync *prometheus.Desc
	healthy  *prometheus.Desc
}

func newHealthCollector(server string, read HealthFunc) *healthCollector {
	labels := prometheus.Labels{"server": server}
	return &healthCollector{
		read:     read,
		offset:   prometheus.NewDesc("taskrace_clock_offset_seconds", "NTP offset applied to local time; positive means local time is behind", nil, labels),
		lastSync: prometheus.NewDesc("taskrace_clock_last_sync_unix", "Unix time of the last NTP sync attempt", nil, labels),
		healthy:  prometheus.NewDesc("taskrace_clock_healthy", "1 when the last sync succeeded within the offset threshold", nil, labels),
	}
}

func (c *healthCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *healthCollector) Collect(ch chan<- prometheus.Metric) {
	ok, offset, lastSync, _ := c.read()

	healthy := 0.0
	if ok {
		healthy = 1
	}
	var synced float64
	if !lastSync.IsZero() {
		synced = float64(lastSync.Unix())
	}

	ch <- prometheus.MustNewConstMetric(c.offset, prometheus.GaugeValue, offset.Seconds())
	ch <- prometheus.MustNewConstMetric(c.lastSync, prometheus.GaugeValue, synced)
	ch <- prometheus.MustNewConstMetric(c.healthy, prometheus.GaugeValue, healthy)
}

// RegisterClockMetrics 注册 NTP 时钟健康指标，server 作为常量标签
func RegisterClockMetrics(reg prometheus.Registerer, server string, read HealthFunc) error {
	return reg.Register(newHealthCollector(server, read))
}
