package replay

import (
	"errors"
	"fmt"

	clockimpl "github.com/weisyn/taskrace/internal/core/infrastructure/clock"
	"github.com/weisyn/taskrace/pkg/types"
	"github.com/weisyn/taskrace/pkg/utils/timeutil"
)

// ErrEmptySession 会话没有快照可回放
var ErrEmptySession = errors.New("recording session has no snapshots")

// MismatchError 回放得到的快照与录制不一致
type MismatchError struct {
	Index int
	Want  types.Snapshot
	Got   types.Snapshot
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("replay mismatch at #%d: want %s, got %s", e.Index, e.Want, e.Got)
}

// Replay 安装测试时钟，依次 Set 录制的时间戳并重新捕获
//
// 回放期间进程级时钟被替换为测试时钟，结束后恢复原时钟（原先未安装则卸载）。
// 返回回放捕获的快照；首个不一致处返回 *MismatchError。
func Replay(recorded []types.Snapshot, onStep func(index int, s types.Snapshot)) ([]types.Snapshot, error) {
	if len(recorded) == 0 {
		return nil, ErrEmptySession
	}

	tc := clockimpl.NewTestClock(recorded[0].CreatedUtc)
	prev := timeutil.Swap(tc)
	// prev 为 nil 时等价于卸载
	defer timeutil.Install(prev)

	rec := NewRecorder()
	for i, want := range recorded {
		tc.Set(want.CreatedUtc)
		got := rec.Capture()
		if onStep != nil {
			onStep(i, got)
		}
		if !got.Equal(want) {
			return rec.Snapshots(), &MismatchError{Index: i, Want: want, Got: got}
		}
	}
	return rec.Snapshots(), nil
}
