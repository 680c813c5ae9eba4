package clock

import "time"

const (
	defaultType      = "system"
	defaultNTPServer = "time.nist.gov"

	// 同步与退避
	defaultSyncInterval   = 5 * time.Minute
	defaultBackoffInitial = 5 * time.Second
	defaultBackoffMax     = 5 * time.Minute

	// 偏移超过该值视为不健康
	defaultOffsetThreshold = 500 * time.Millisecond
)
