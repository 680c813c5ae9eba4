package clock

import (
	"sync/atomic"
	"time"

	infraClock "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
)

// TestClock 测试/回放用时钟，只返回最后一次 Set 的值
//
// 读取不依赖墙上时间，也不会漂移；按录制的时间序列重放 Set
// 可以逐位复现派生值（微秒、毫秒分量等）。
type TestClock struct {
	current atomic.Pointer[time.Time]
}

// NewTestClock 以初始时间创建测试时钟
func NewTestClock(initial time.Time) *TestClock {
	c := &TestClock{}
	c.Set(initial)
	return c
}

// Set 覆盖当前时间
func (c *TestClock) Set(t time.Time) {
	// 去掉单调时钟读数，保证相同时间戳的两次读取结构相等
	v := t.Round(0)
	c.current.Store(&v)
}

// Advance 推进时间
func (c *TestClock) Advance(d time.Duration) {
	c.Set(c.value().Add(d))
}

func (c *TestClock) value() time.Time { return *c.current.Load() }

func (c *TestClock) Now() time.Time                  { return c.value().Local() }
func (c *TestClock) UtcNow() time.Time               { return c.value().UTC() }
func (c *TestClock) Since(t time.Time) time.Duration { return c.value().Sub(t) }
func (c *TestClock) Unix() int64                     { return c.value().Unix() }
func (c *TestClock) UnixNano() int64                 { return c.value().UnixNano() }

// Ensure接口实现满足 infraClock.SettableClock
var _ infraClock.SettableClock = (*TestClock)(nil)
