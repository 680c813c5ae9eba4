package event

import (
	"time"

	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/taskrace/pkg/types"
	"github.com/weisyn/taskrace/pkg/utils/race"
	"github.com/weisyn/taskrace/pkg/utils/timeutil"
)

// RacePublisher 把竞速过程广播到事件总线
//
// 同时实现 race.ErrorSink（每个失败操作一条 OperationFailure）
// 和 race.Observer（每次竞速结束一条 RaceFinished）。
type RacePublisher struct {
	bus   event.EventBus
	clock clock.Clock
}

var (
	_ race.ErrorSink = (*RacePublisher)(nil)
	_ race.Observer  = (*RacePublisher)(nil)
)

// NewRacePublisher 创建竞速事件发布者
func NewRacePublisher(bus event.EventBus, clk clock.Clock) *RacePublisher {
	return &RacePublisher{bus: bus, clock: clk}
}

// ReportError 实现 race.ErrorSink
func (p *RacePublisher) ReportError(err error, label string) {
	if p == nil || p.bus == nil || err == nil {
		return
	}
	p.bus.Publish(types.EventTypeOperationFailed, types.OperationFailure{
		Label:      label,
		Error:      err.Error(),
		OccurredAt: p.utcNow(),
	})
}

// utcNow 优先读取进程级时钟，未安装时退回构造时注入的时钟
func (p *RacePublisher) utcNow() time.Time {
	if c, err := timeutil.Current(); err == nil {
		return c.UtcNow()
	}
	if p.clock != nil {
		return p.clock.UtcNow()
	}
	return time.Now().UTC()
}

// ObserveRace 实现 race.Observer
func (p *RacePublisher) ObserveRace(label string, outcome race.Outcome, elapsed time.Duration, failures int) {
	if p == nil || p.bus == nil {
		return
	}
	p.bus.Publish(types.EventTypeRaceFinished, types.RaceFinished{
		Label:    label,
		Outcome:  string(outcome),
		Elapsed:  elapsed,
		Failures: failures,
	})
}
