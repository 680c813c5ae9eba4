package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	eventconfig "github.com/weisyn/taskrace/internal/config/event"
	clockimpl "github.com/weisyn/taskrace/internal/core/infrastructure/clock"
	"github.com/weisyn/taskrace/pkg/types"
	"github.com/weisyn/taskrace/pkg/utils/race"
	"github.com/weisyn/taskrace/pkg/utils/timeutil"
)

// TestEventBus 测试同步/异步订阅与取消订阅
func TestEventBus(t *testing.T) {
	eventBus := New(eventconfig.New(nil))

	var receivedData string
	handler := func(data string) {
		receivedData = data
	}

	require.NoError(t, eventBus.Subscribe(types.EventType("test-event"), handler))
	assert.True(t, eventBus.HasCallback(types.EventType("test-event")))

	// 同步订阅：Publish 返回时处理器已执行
	eventBus.Publish(types.EventType("test-event"), "hello world")
	assert.Equal(t, "hello world", receivedData)

	var asyncData string
	var mu sync.Mutex
	asyncHandler := func(data string) {
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		asyncData = data
		mu.Unlock()
	}
	require.NoError(t, eventBus.SubscribeAsync(types.EventType("async-event"), asyncHandler, false))

	eventBus.Publish(types.EventType("async-event"), "async data")
	eventBus.WaitAsync()

	mu.Lock()
	assert.Equal(t, "async data", asyncData)
	mu.Unlock()

	require.NoError(t, eventBus.Unsubscribe(types.EventType("test-event"), handler))
	receivedData = ""
	eventBus.Publish(types.EventType("test-event"), "should not receive")
	assert.Empty(t, receivedData)

	assert.Equal(t, uint64(3), eventBus.Published())
}

// TestSubscribeOnce 一次性订阅只触发一次
func TestSubscribeOnce(t *testing.T) {
	eventBus := New(nil)

	calls := 0
	require.NoError(t, eventBus.SubscribeOnce(types.EventType("once"), func() { calls++ }))

	eventBus.Publish(types.EventType("once"))
	eventBus.Publish(types.EventType("once"))
	assert.Equal(t, 1, calls)
}

// TestDisabledEventBus 禁用时静默成功且不投递
func TestDisabledEventBus(t *testing.T) {
	eventBus := New(eventconfig.New(&types.UserEventConfig{Enabled: types.BoolPtr(false)}))

	called := false
	require.NoError(t, eventBus.Subscribe(types.EventType("test-event"), func() { called = true }))
	eventBus.Publish(types.EventType("test-event"))

	assert.False(t, called)
	assert.False(t, eventBus.HasCallback(types.EventType("test-event")))
	assert.Zero(t, eventBus.Published())
}

// TestRacePublisher 竞速失败与结束事件
func TestRacePublisher(t *testing.T) {
	prev := timeutil.Swap(nil)
	t.Cleanup(func() { timeutil.Install(prev) })

	eventBus := New(nil)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	publisher := NewRacePublisher(eventBus, clockimpl.NewTestClock(at))

	var failures []types.OperationFailure
	var finished []types.RaceFinished
	require.NoError(t, eventBus.Subscribe(types.EventTypeOperationFailed, func(f types.OperationFailure) {
		failures = append(failures, f)
	}))
	require.NoError(t, eventBus.Subscribe(types.EventTypeRaceFinished, func(f types.RaceFinished) {
		finished = append(finished, f)
	}))

	ops := []race.Operation[int]{
		func(ctx context.Context) (int, error) { return 0, errors.New("boom") },
		func(ctx context.Context) (int, error) {
			time.Sleep(20 * time.Millisecond)
			return 7, nil
		},
	}
	res, err := race.Run(context.Background(), ops, func(v int) bool { return v == 7 },
		race.WithLabel("demo"),
		race.WithErrorSink(publisher),
		race.WithObserver(publisher),
	)
	require.NoError(t, err)
	require.True(t, res.Found())

	require.Len(t, failures, 1)
	assert.Equal(t, "demo[0]", failures[0].Label)
	assert.Equal(t, "boom", failures[0].Error)
	assert.Equal(t, at, failures[0].OccurredAt)

	require.Len(t, finished, 1)
	assert.Equal(t, "demo", finished[0].Label)
	assert.Equal(t, string(race.OutcomeMatched), finished[0].Outcome)
	assert.Equal(t, 1, finished[0].Failures)
}

// TestRacePublisherFollowsSwappedClock 进程级时钟被替换后，失败时间取自新时钟
func TestRacePublisherFollowsSwappedClock(t *testing.T) {
	injected := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	swapped := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

	prev := timeutil.Swap(clockimpl.NewTestClock(injected))
	t.Cleanup(func() { timeutil.Install(prev) })

	eventBus := New(nil)
	publisher := NewRacePublisher(eventBus, clockimpl.NewTestClock(injected))

	var failures []types.OperationFailure
	require.NoError(t, eventBus.Subscribe(types.EventTypeOperationFailed, func(f types.OperationFailure) {
		failures = append(failures, f)
	}))

	timeutil.Swap(clockimpl.NewTestClock(swapped))
	publisher.ReportError(errors.New("boom"), "demo[0]")

	require.Len(t, failures, 1)
	assert.Equal(t, swapped, failures[0].OccurredAt)
}

// TestRacePublisherNil nil 发布者不会 panic
func TestRacePublisherNil(t *testing.T) {
	var publisher *RacePublisher
	assert.NotPanics(t, func() {
		publisher.ReportError(errors.New("boom"), "race[0]")
		publisher.ObserveRace("race", race.OutcomeExhausted, time.Second, 0)
	})
}
