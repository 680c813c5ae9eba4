package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clockimpl "github.com/weisyn/taskrace/internal/core/infrastructure/clock"
	infraClock "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/taskrace/pkg/types"
	"github.com/weisyn/taskrace/pkg/utils/timeutil"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// useClock 安装时钟，测试结束后恢复原时钟
func useClock(t *testing.T, c infraClock.Clock) {
	t.Helper()
	prev := timeutil.Swap(c)
	t.Cleanup(func() { timeutil.Install(prev) })
}

func TestCapture_DerivesSubSecondComponents(t *testing.T) {
	tc := clockimpl.NewTestClock(t0)
	useClock(t, tc)
	rec := NewRecorder()

	// T0 + 1500ms → Y = 500, X = 0
	tc.Advance(1500 * time.Millisecond)
	s := rec.Capture()
	assert.Equal(t, 500, s.Y)
	assert.Equal(t, 0, s.X)
	assert.Equal(t, t0.Add(1500*time.Millisecond), s.CreatedUtc)

	tc.Set(t0.Add(123456789 * time.Nanosecond))
	s = rec.Capture()
	assert.Equal(t, 123, s.Y)
	assert.Equal(t, 456, s.X)
}

func TestCapture_SameTimestampIsEqual(t *testing.T) {
	tc := clockimpl.NewTestClock(t0.Add(987654 * time.Microsecond))
	useClock(t, tc)
	rec := NewRecorder()

	a := rec.Capture()
	b := rec.Capture()
	assert.Equal(t, a, b)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 2, rec.Len())
}

func TestCapture_PanicsWithoutClock(t *testing.T) {
	useClock(t, nil)
	rec := NewRecorder()
	assert.PanicsWithError(t, timeutil.ErrClockNotInstalled.Error(), func() { rec.Capture() })
	assert.Zero(t, rec.Len())
}

func TestSnapshots_ReturnsCopy(t *testing.T) {
	useClock(t, clockimpl.NewTestClock(t0))
	rec := NewRecorder()
	rec.Capture()

	snaps := rec.Snapshots()
	snaps[0].X = 42
	assert.Equal(t, 0, rec.Snapshots()[0].X)

	rec.Reset()
	assert.Empty(t, rec.Snapshots())
}

func TestCapture_Hooks(t *testing.T) {
	useClock(t, clockimpl.NewTestClock(t0))
	var seen []types.Snapshot
	rec := NewRecorder(nil, func(s types.Snapshot) { seen = append(seen, s) })

	s := rec.Capture()
	require.Len(t, seen, 1)
	assert.Equal(t, s, seen[0])
}

func TestRecord_StopsWhenClockSaysDone(t *testing.T) {
	tc := clockimpl.NewTestClock(t0)
	useClock(t, tc)
	rec := NewRecorder()

	session, err := rec.Record(context.Background(), RecordOptions{
		Duration: 3 * time.Second,
		Interval: time.Millisecond,
		OnTick:   func(int, types.Snapshot) { tc.Advance(time.Second) },
	})
	require.NoError(t, err)

	require.Len(t, session.Snapshots, 3)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, t0, session.StartedUtc)
	assert.Equal(t, t0.Add(2*time.Second), session.Snapshots[2].CreatedUtc)
	assert.Equal(t, session.Snapshots, rec.Snapshots())
}

func TestRecord_CapturesAtLeastOnce(t *testing.T) {
	useClock(t, clockimpl.NewTestClock(t0))
	session, err := NewRecorder().Record(context.Background(), RecordOptions{Interval: time.Millisecond})
	require.NoError(t, err)
	assert.Len(t, session.Snapshots, 1)
}

func TestRecord_FinishesUnderNonLiveClocks(t *testing.T) {
	cases := map[string]infraClock.Clock{
		"frozen":        clockimpl.NewTestClock(t0),
		"deterministic": clockimpl.NewDeterministicClock(t0),
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			useClock(t, c)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			session, err := NewRecorder().Record(ctx, RecordOptions{
				Duration: 50 * time.Millisecond,
				Interval: time.Millisecond,
			})
			require.NoError(t, err)
			assert.NotEmpty(t, session.Snapshots)
			assert.LessOrEqual(t, len(session.Snapshots), 51)
		})
	}
}

func TestRecord_Cancelled(t *testing.T) {
	useClock(t, clockimpl.NewTestClock(t0))
	ctx, cancel := context.WithCancel(context.Background())

	session, err := NewRecorder().Record(ctx, RecordOptions{
		Duration: time.Hour,
		Interval: time.Hour,
		OnTick:   func(int, types.Snapshot) { cancel() },
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, session)
	assert.Len(t, session.Snapshots, 1)
}

func TestRecord_InvalidInterval(t *testing.T) {
	useClock(t, clockimpl.NewTestClock(t0))
	_, err := NewRecorder().Record(context.Background(), RecordOptions{Duration: time.Second})
	assert.Error(t, err)
}

// recordIrregular 录制一组间隔不规则的快照
func recordIrregular(t *testing.T) []types.Snapshot {
	t.Helper()
	tc := clockimpl.NewTestClock(t0)
	useClock(t, tc)
	rec := NewRecorder()
	steps := []time.Duration{
		0,
		1000*time.Millisecond + 1234*time.Microsecond,
		999*time.Millisecond + 17*time.Nanosecond,
		1001*time.Millisecond + 999*time.Microsecond,
		1*time.Second + 500*time.Millisecond,
	}
	for _, d := range steps {
		tc.Advance(d)
		rec.Capture()
	}
	return rec.Snapshots()
}

func TestReplay_ReproducesRecording(t *testing.T) {
	recorded := recordIrregular(t)

	var steps []int
	replayed, err := Replay(recorded, func(i int, _ types.Snapshot) { steps = append(steps, i) })
	require.NoError(t, err)
	assert.Equal(t, recorded, replayed)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, steps)

	// 回放可重复
	again, err := Replay(recorded, nil)
	require.NoError(t, err)
	assert.Equal(t, replayed, again)
}

func TestReplay_RestoresPreviousClock(t *testing.T) {
	recorded := recordIrregular(t)

	sentinel := clockimpl.NewTestClock(t0.Add(time.Hour))
	useClock(t, sentinel)
	_, err := Replay(recorded, nil)
	require.NoError(t, err)
	assert.Same(t, sentinel, timeutil.MustCurrent())

	timeutil.Uninstall()
	_, err = Replay(recorded, nil)
	require.NoError(t, err)
	assert.False(t, timeutil.Installed())
}

func TestReplay_Empty(t *testing.T) {
	_, err := Replay(nil, nil)
	assert.ErrorIs(t, err, ErrEmptySession)
}

func TestReplay_Mismatch(t *testing.T) {
	recorded := recordIrregular(t)
	recorded[2].X = (recorded[2].X + 1) % 1000

	replayed, err := Replay(recorded, nil)
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.Index)
	assert.Equal(t, recorded[2], mismatch.Want)
	assert.Len(t, replayed, 3)
	assert.Contains(t, err.Error(), "#2")
}
