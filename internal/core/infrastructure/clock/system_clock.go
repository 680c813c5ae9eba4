package clock

import (
	"time"

	infraClock "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
)

// SystemClock 直接读取操作系统时间
//
// Now 带单调时钟读数，Since 不受墙上时间回拨影响。
type SystemClock struct{}

var _ infraClock.Clock = (*SystemClock)(nil)

// NewSystemClock 创建系统时钟
func NewSystemClock() infraClock.Clock { return &SystemClock{} }

func (*SystemClock) Now() time.Time { return time.Now() }

// UtcNow 去掉单调读数，保证录制的时间戳可以按值比较
func (*SystemClock) UtcNow() time.Time { return time.Now().UTC().Round(0) }

func (*SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

func (*SystemClock) Unix() int64 { return time.Now().Unix() }

func (*SystemClock) UnixNano() int64 { return time.Now().UnixNano() }
