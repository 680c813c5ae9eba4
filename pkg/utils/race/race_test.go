package race

import (
	"context"
	"errors"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isIP(s string) bool {
	_, err := netip.ParseAddr(s)
	return err == nil
}

func after[V any](d time.Duration, v V) Operation[V] {
	return func(ctx context.Context) (V, error) {
		select {
		case <-time.After(d):
			return v, nil
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}
}

func failing[V any](err error) Operation[V] {
	return func(context.Context) (V, error) {
		var zero V
		return zero, err
	}
}

type sinkRecorder struct {
	mu     sync.Mutex
	labels []string
	errs   []error
}

func (r *sinkRecorder) ReportError(err error, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = append(r.labels, label)
	r.errs = append(r.errs, err)
}

type observerRecorder struct {
	label    string
	outcome  Outcome
	failures int
	calls    int
}

func (o *observerRecorder) ObserveRace(label string, outcome Outcome, _ time.Duration, failures int) {
	o.label, o.outcome, o.failures = label, outcome, failures
	o.calls++
}

func TestRun_EmptyOperationsIsNoMatch(t *testing.T) {
	res, err := Run[string](context.Background(), nil, isIP)
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, NoMatch, res.Index)
	assert.Equal(t, OutcomeExhausted, res.Outcome)
}

// 第1个立即失败，第2、3个返回非IP字符串，第4个返回IP
func TestRun_ReturnsFirstValueSatisfyingPredicate(t *testing.T) {
	ops := []Operation[string]{
		failing[string](errors.New("no such host")),
		after(5*time.Millisecond, "<html>not found</html>"),
		after(10*time.Millisecond, "rate limited"),
		after(30*time.Millisecond, "93.184.216.34"),
	}
	sink := &sinkRecorder{}

	res, err := Run(context.Background(), ops, isIP, WithTimeout(5*time.Second), WithErrorSink(sink), WithLabel("whatsmyip"))
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, 3, res.Index)
	assert.Equal(t, "93.184.216.34", res.Value)
	assert.Equal(t, OutcomeMatched, res.Outcome)
	assert.Equal(t, 1, res.Failures)
	assert.Equal(t, []string{"whatsmyip[0]"}, sink.labels)
}

func TestRun_CompletionOrderBeatsSubmissionOrder(t *testing.T) {
	ops := []Operation[string]{
		after(500*time.Millisecond, "10.0.0.1"),
		after(5*time.Millisecond, "10.0.0.2"),
	}

	res, err := Run(context.Background(), ops, isIP)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, "10.0.0.2", res.Value)
}

func TestRun_DuplicateValuesFirstArrivalWins(t *testing.T) {
	ops := []Operation[string]{
		after(200*time.Millisecond, "1.1.1.1"),
		after(5*time.Millisecond, "1.1.1.1"),
		after(100*time.Millisecond, "1.1.1.1"),
	}

	res, err := Run(context.Background(), ops, isIP)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
}

func TestRun_PredicateEvaluatedInCompletionOrder(t *testing.T) {
	gates := []chan struct{}{make(chan struct{}), make(chan struct{}), make(chan struct{})}
	op := func(i int) Operation[int] {
		return func(ctx context.Context) (int, error) {
			<-gates[i]
			return i, nil
		}
	}
	ops := []Operation[int]{op(0), op(1), op(2)}

	// 完成顺序 2 -> 0 -> 1：谓词每看到一个结果才放行下一个
	next := map[int]int{2: 0, 0: 1}
	var seen []int
	predicate := func(v int) bool {
		seen = append(seen, v)
		if n, ok := next[v]; ok {
			close(gates[n])
		}
		return false
	}
	close(gates[2])

	res, err := Run(context.Background(), ops, predicate, WithTimeout(5*time.Second))
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Equal(t, []int{2, 0, 1}, seen)
}

func TestRun_RejectAllReturnsPromptlyBeforeDeadline(t *testing.T) {
	ops := []Operation[string]{
		after(time.Millisecond, "a"),
		after(2*time.Millisecond, "b"),
		failing[string](errors.New("boom")),
	}

	start := time.Now()
	res, err := Run(context.Background(), ops, func(string) bool { return false }, WithTimeout(10*time.Second))
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, OutcomeExhausted, res.Outcome)
	assert.Equal(t, 1, res.Failures)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// 截止时间远小于所有操作的耗时：按截止时间返回无匹配
func TestRun_DeadlineElapsesBeforeSlowOperations(t *testing.T) {
	slow := after(10*time.Second, "93.184.216.34")
	ops := []Operation[string]{slow, slow, slow, slow}

	start := time.Now()
	res, err := Run(context.Background(), ops, isIP, WithTimeout(50*time.Millisecond))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, OutcomeDeadline, res.Outcome)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestRun_DoesNotWaitForOperationsIgnoringCancellation(t *testing.T) {
	stubborn := func(context.Context) (string, error) {
		time.Sleep(500 * time.Millisecond)
		return "8.8.8.8", nil
	}

	start := time.Now()
	res, err := Run(context.Background(), []Operation[string]{stubborn}, isIP, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeadline, res.Outcome)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestRun_ParentDeadlineIsHonoured(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	res, err := Run(ctx, []Operation[string]{after(10*time.Second, "1.2.3.4")}, isIP)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeadline, res.Outcome)
}

func TestRun_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res, err := Run(ctx, []Operation[string]{after(10*time.Second, "1.2.3.4")}, isIP)
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, OutcomeCancelled, res.Outcome)
}

func TestRun_WinnerCancelsOutstandingOperations(t *testing.T) {
	cancelled := make(chan struct{})
	loser := func(ctx context.Context) (string, error) {
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	}

	res, err := Run(context.Background(), []Operation[string]{loser, after(time.Millisecond, "1.2.3.4")}, isIP)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("未获胜的操作应收到取消信号")
	}
}

func TestRun_PredicatePanicFailsFast(t *testing.T) {
	cause := errors.New("malformed")
	predicate := func(string) bool { panic(cause) }

	res, err := Run(context.Background(), []Operation[string]{after(time.Millisecond, "x")}, predicate)
	require.Error(t, err)

	var perr *PredicateError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Index)
	assert.ErrorIs(t, err, cause)
	assert.False(t, res.Found())
	assert.Equal(t, OutcomePredicatePanic, res.Outcome)
}

func TestRun_OperationPanicIsTreatedAsFailure(t *testing.T) {
	panicking := func(context.Context) (string, error) { panic("kaboom") }
	sink := &sinkRecorder{}

	res, err := Run(context.Background(),
		[]Operation[string]{panicking, nil, after(50*time.Millisecond, "4.4.4.4")},
		isIP, WithErrorSink(sink))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Index)
	assert.Equal(t, 2, res.Failures)

	require.Len(t, sink.errs, 2)
	var perr *OperationPanicError
	var sawPanic, sawNil bool
	for _, e := range sink.errs {
		if errors.As(e, &perr) {
			sawPanic = true
		}
		if errors.Is(e, ErrNilOperation) {
			sawNil = true
		}
	}
	assert.True(t, sawPanic)
	assert.True(t, sawNil)
}

func TestRun_NilPredicate(t *testing.T) {
	_, err := Run[string](context.Background(), []Operation[string]{after(time.Millisecond, "x")}, nil)
	assert.ErrorIs(t, err, ErrNilPredicate)
}

func TestRun_ObserverSeesOutcome(t *testing.T) {
	obs := &observerRecorder{}
	_, err := Run(context.Background(),
		[]Operation[string]{failing[string](errors.New("x")), after(time.Millisecond, "9.9.9.9")},
		isIP, WithObserver(obs), WithLabel("probe"))
	require.NoError(t, err)

	assert.Equal(t, 1, obs.calls)
	assert.Equal(t, "probe", obs.label)
	assert.Equal(t, OutcomeMatched, obs.outcome)
}

func TestAny(t *testing.T) {
	v, ok, err := Any(context.Background(),
		[]Operation[string]{after(time.Millisecond, "nope"), after(5*time.Millisecond, "2001:db8::1")},
		isIP)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2001:db8::1", v)

	_, ok, err = Any(context.Background(), []Operation[string]{after(time.Millisecond, "nope")}, isIP)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestErrorSinkFunc(t *testing.T) {
	var got string
	var sink ErrorSink = ErrorSinkFunc(func(_ error, label string) { got = label })
	sink.ReportError(errors.New("x"), "lbl")
	assert.Equal(t, "lbl", got)
}

func TestObservers_FanOut(t *testing.T) {
	a, b := &observerRecorder{}, &observerRecorder{}
	_, err := Run(context.Background(),
		[]Operation[string]{after(time.Millisecond, "1.1.1.1")},
		isIP, WithObserver(Observers(a, nil, b)))
	require.NoError(t, err)

	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, OutcomeMatched, b.outcome)
}

func TestErrorSinks_FanOut(t *testing.T) {
	a := &sinkRecorder{}
	var fromFunc []string
	sink := ErrorSinks(a, nil, ErrorSinkFunc(func(_ error, label string) { fromFunc = append(fromFunc, label) }))

	_, err := Run(context.Background(),
		[]Operation[string]{failing[string](errors.New("x")), after(10*time.Millisecond, "1.1.1.1")},
		isIP, WithErrorSink(sink), WithLabel("fan"))
	require.NoError(t, err)

	assert.Equal(t, []string{"fan[0]"}, a.labels)
	assert.Equal(t, []string{"fan[0]"}, fromFunc)
}
