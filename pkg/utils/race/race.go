// Package race 提供按条件竞速的并发原语
//
// 🏁 **条件竞速 (Condition-Gated Race)**
//
// 同时启动一组异步操作，按完成顺序依次用谓词检查成功结果，
// 返回第一个满足谓词的结果，而不是第一个完成的结果：
// - 失败的操作（错误、panic、取消）视为不匹配，不会中断竞速
// - 命中后立即返回，并通过共享 context 取消其余操作（不等待其退出）
// - 到达截止时间或调用方取消时返回"无匹配"，不会阻塞超过截止时间
// - 全部完成仍无匹配时立即返回"无匹配"，不等待截止时间
//
// "无匹配"不是错误：调用方通过 Result.Found() 判断并自行决定如何处理。
// 只有谓词自身 panic（程序错误）才会以 *PredicateError 返回。
package race

import (
	"context"
	"errors"
	"time"
)

// Operation 一个可取消的异步操作
type Operation[V any] func(ctx context.Context) (V, error)

// Predicate 对成功结果的纯函数判定
type Predicate[V any] func(V) bool

// NoMatch 无匹配时 Result.Index 的取值
const NoMatch = -1

// Outcome 竞速结束的原因
type Outcome string

const (
	OutcomeMatched        Outcome = "matched"         // 找到满足谓词的结果
	OutcomeExhausted      Outcome = "exhausted"       // 所有操作结束，无匹配
	OutcomeDeadline       Outcome = "deadline"        // 截止时间先到
	OutcomeCancelled      Outcome = "cancelled"       // 调用方取消
	OutcomePredicatePanic Outcome = "predicate_panic" // 谓词 panic
)

// Result 竞速结果
type Result[V any] struct {
	Index    int     // 获胜操作的下标，无匹配时为 NoMatch
	Value    V       // 获胜操作的值
	Outcome  Outcome // 结束原因
	Failures int     // 返回前观察到的失败操作数
}

// Found 是否有操作获胜
func (r Result[V]) Found() bool { return r.Index != NoMatch }

type completion[V any] struct {
	index int
	value V
	err   error
}

// Run 并发执行 ops，返回按完成顺序第一个满足 predicate 的结果
func Run[V any](ctx context.Context, ops []Operation[V], predicate Predicate[V], opts ...Option) (Result[V], error) {
	s := newSettings(opts)
	// 只用于计算耗时（单调时钟），不经过进程级时钟
	start := time.Now()
	res := Result[V]{Index: NoMatch, Outcome: OutcomeExhausted}

	if predicate == nil {
		return res, ErrNilPredicate
	}
	if len(ops) == 0 {
		s.observe(res.Outcome, time.Since(start), 0)
		return res, nil
	}

	raceCtx, cancel := s.derive(ctx)
	// 返回即取消其余操作，不等待它们退出
	defer cancel()

	// 缓冲到 len(ops)，协调者返回后操作 goroutine 也不会阻塞
	completions := make(chan completion[V], len(ops))
	for i, op := range ops {
		go execute(raceCtx, i, op, completions)
	}

	for pending := len(ops); pending > 0; pending-- {
		// 截止/取消优先于尚未取出的完成事件
		if raceCtx.Err() != nil {
			res.Outcome = stopReason(raceCtx)
			break
		}

		var c completion[V]
		select {
		case <-raceCtx.Done():
			res.Outcome = stopReason(raceCtx)
			s.observe(res.Outcome, time.Since(start), res.Failures)
			return res, nil
		case c = <-completions:
		}

		if c.err != nil {
			res.Failures++
			s.report(c.index, c.err)
			continue
		}

		matched, err := evaluate(predicate, c.index, c.value)
		if err != nil {
			res.Outcome = OutcomePredicatePanic
			s.observe(res.Outcome, time.Since(start), res.Failures)
			return res, err
		}
		if matched {
			res.Index, res.Value, res.Outcome = c.index, c.value, OutcomeMatched
			s.observe(res.Outcome, time.Since(start), res.Failures)
			return res, nil
		}
	}

	s.observe(res.Outcome, time.Since(start), res.Failures)
	return res, nil
}

// Any 与 Run 相同，但只返回 (值, 是否命中, 错误)
func Any[V any](ctx context.Context, ops []Operation[V], predicate Predicate[V], opts ...Option) (V, bool, error) {
	res, err := Run(ctx, ops, predicate, opts...)
	return res.Value, res.Found(), err
}

func execute[V any](ctx context.Context, index int, op Operation[V], out chan<- completion[V]) {
	c := completion[V]{index: index}
	defer func() {
		if r := recover(); r != nil {
			var zero V
			c.value, c.err = zero, &OperationPanicError{Index: index, Value: r}
		}
		out <- c
	}()
	if op == nil {
		c.err = ErrNilOperation
		return
	}
	c.value, c.err = op(ctx)
}

func evaluate[V any](predicate Predicate[V], index int, value V) (matched bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			matched, err = false, &PredicateError{Index: index, Value: r}
		}
	}()
	return predicate(value), nil
}

func stopReason(ctx context.Context) Outcome {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return OutcomeDeadline
	}
	return OutcomeCancelled
}
