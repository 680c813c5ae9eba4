package clock

import (
	"fmt"
	"time"

	clockconfig "github.com/weisyn/taskrace/internal/config/clock"
	infraClock "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
)

// 时钟类型
const (
	TypeSystem        = "system"
	TypeNTP           = "ntp"
	TypeTest          = "test"
	TypeDeterministic = "deterministic"
)

// New 按配置创建时钟
// ntp 初始化失败时回退系统时钟，未知类型返回错误
func New(opts *clockconfig.ClockOptions) (infraClock.Clock, error) {
	if opts == nil {
		return NewSystemClock(), nil
	}
	switch opts.Type {
	case "", TypeSystem:
		return NewSystemClock(), nil
	case TypeNTP:
		c, err := NewNTPClock(NTPOptions{
			Server:             opts.NTPServer,
			SyncInterval:       opts.SyncInterval,
			BackoffInitial:     opts.BackoffInitial,
			BackoffMax:         opts.BackoffMax,
			UnhealthyThreshold: opts.OffsetThreshold,
		})
		if err != nil {
			return NewSystemClock(), nil
		}
		return c, nil
	case TypeTest:
		return NewTestClock(time.Unix(opts.DeterministicBaseUnix, 0).UTC()), nil
	case TypeDeterministic:
		return NewDeterministicClock(time.Unix(opts.DeterministicBaseUnix, 0).UTC()), nil
	default:
		return nil, fmt.Errorf("unknown clock type %q", opts.Type)
	}
}
