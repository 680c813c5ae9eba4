package race

import (
	"context"
	"fmt"
	"time"
)

// ErrorSink 接收单个操作的失败（日志/遥测等外部协作者）
type ErrorSink interface {
	ReportError(err error, label string)
}

// ErrorSinkFunc 函数形式的 ErrorSink
type ErrorSinkFunc func(err error, label string)

func (f ErrorSinkFunc) ReportError(err error, label string) { f(err, label) }

// Observer 观察每次竞速的结束情况（指标采集）
type Observer interface {
	ObserveRace(label string, outcome Outcome, elapsed time.Duration, failures int)
}

// Option 竞速选项
type Option func(*settings)

type settings struct {
	timeout  time.Duration
	sink     ErrorSink
	label    string
	observer Observer
}

const defaultLabel = "race"

func newSettings(opts []Option) *settings {
	s := &settings{label: defaultLabel}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// WithTimeout 设置整体截止时间（在调用方 context 之上再收紧）
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithErrorSink 设置操作失败的接收者
func WithErrorSink(sink ErrorSink) Option {
	return func(s *settings) { s.sink = sink }
}

// WithLabel 设置用于日志和指标的标签
func WithLabel(label string) Option {
	return func(s *settings) {
		if label != "" {
			s.label = label
		}
	}
}

// WithObserver 设置结束观察者
func WithObserver(o Observer) Option {
	return func(s *settings) { s.observer = o }
}

func (s *settings) derive(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

func (s *settings) report(index int, err error) {
	if s.sink == nil {
		return
	}
	s.sink.ReportError(err, fmt.Sprintf("%s[%d]", s.label, index))
}

func (s *settings) observe(outcome Outcome, elapsed time.Duration, failures int) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveRace(s.label, outcome, elapsed, failures)
}

// Observers 把多个观察者合并为一个，nil 项被忽略
func Observers(observers ...Observer) Observer {
	return multiObserver(compact(observers))
}

type multiObserver []Observer

func (m multiObserver) ObserveRace(label string, outcome Outcome, elapsed time.Duration, failures int) {
	for _, o := range m {
		o.ObserveRace(label, outcome, elapsed, failures)
	}
}

// ErrorSinks 把多个错误接收者合并为一个，nil 项被忽略
func ErrorSinks(sinks ...ErrorSink) ErrorSink {
	return multiSink(compact(sinks))
}

type multiSink []ErrorSink

func (m multiSink) ReportError(err error, label string) {
	for _, s := range m {
		s.ReportError(err, label)
	}
}

func compact[T comparable](items []T) []T {
	var zero T
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != zero {
			out = append(out, item)
		}
	}
	return out
}
