package clock

import (
	"sync/atomic"
	"time"

	infraClock "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
)

// DeterministicClock 基于固定基准时间和递增序列，提供确定性时间源
// 每次读取前进 1ms
type DeterministicClock struct {
	baseTime time.Time
	sequence atomic.Int64
}

func NewDeterministicClock(base time.Time) infraClock.Clock {
	return &DeterministicClock{baseTime: base.Round(0)}
}

func (c *DeterministicClock) next() time.Time {
	n := c.sequence.Add(1)
	return c.baseTime.Add(time.Duration(n) * time.Millisecond)
}

func (c *DeterministicClock) Now() time.Time                  { return c.next().Local() }
func (c *DeterministicClock) UtcNow() time.Time               { return c.next().UTC() }
func (c *DeterministicClock) Since(t time.Time) time.Duration { return c.next().Sub(t) }
func (c *DeterministicClock) Unix() int64                     { return c.next().Unix() }
func (c *DeterministicClock) UnixNano() int64                 { return c.next().UnixNano() }
