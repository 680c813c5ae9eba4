package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weisyn/taskrace/pkg/types"
	"github.com/weisyn/taskrace/pkg/utils/timeutil"
)

// RecordOptions 一次录制的参数
type RecordOptions struct {
	Duration time.Duration                     // 按进程级时钟计的录制时长
	Interval time.Duration                     // 两次采样之间的等待
	OnTick   func(index int, s types.Snapshot) // 每次采样后回调（可选）
}

// Record 每隔 Interval 捕获一个快照，直到进程级时钟显示已过去 Duration
//
// 至少捕获一个快照，至多 Duration/Interval+1 个。上限保证时钟被冻结或
// 按读取推进时录制仍会结束。ctx 结束时返回已捕获部分与 ctx 错误。
func (r *Recorder) Record(ctx context.Context, opts RecordOptions) (*types.RecordingSession, error) {
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("采样间隔必须为正数: %s", opts.Interval)
	}

	session := &types.RecordingSession{
		ID:         uuid.NewString(),
		StartedUtc: timeutil.UtcNow().Round(0),
	}

	maxTicks := 1
	if opts.Duration > 0 {
		maxTicks = int(opts.Duration/opts.Interval) + 1
	}

	for i := 0; ; i++ {
		s := r.Capture()
		session.Snapshots = append(session.Snapshots, s)
		if opts.OnTick != nil {
			opts.OnTick(i, s)
		}

		if i+1 >= maxTicks || timeutil.UtcNow().Sub(session.StartedUtc) >= opts.Duration {
			return session, nil
		}

		timer := time.NewTimer(opts.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return session, fmt.Errorf("录制被中断: %w", ctx.Err())
		case <-timer.C:
		}
	}
}
