// Package timeutil provides the process-wide clock accessor.
package timeutil

import (
	"errors"
	"sync/atomic"
	"time"

	infraClock "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
)

// ErrClockNotInstalled 尚未安装时钟就读取时间
var ErrClockNotInstalled = errors.New("timeutil: no clock installed")

type holder struct{ clock infraClock.Clock }

var active atomic.Pointer[holder]

// Install 安装进程级时钟，之后的所有读取都走该时钟
// 传入 nil 等价于 Uninstall
func Install(c infraClock.Clock) {
	Swap(c)
}

// Swap 替换当前时钟并返回之前安装的时钟（可能为 nil）
func Swap(c infraClock.Clock) infraClock.Clock {
	var next *holder
	if c != nil {
		next = &holder{clock: c}
	}
	prev := active.Swap(next)
	if prev == nil {
		return nil
	}
	return prev.clock
}

// Uninstall 移除当前时钟
func Uninstall() {
	active.Store(nil)
}

// Installed 是否已安装时钟
func Installed() bool {
	return active.Load() != nil
}

// Current 返回当前安装的时钟
func Current() (infraClock.Clock, error) {
	h := active.Load()
	if h == nil {
		return nil, ErrClockNotInstalled
	}
	return h.clock, nil
}

// MustCurrent 返回当前安装的时钟，未安装时 panic
func MustCurrent() infraClock.Clock {
	c, err := Current()
	if err != nil {
		panic(err)
	}
	return c
}

// Now 返回当前时间（来自安装的时钟）
func Now() time.Time { return MustCurrent().Now() }

// UtcNow 返回当前UTC时间（来自安装的时钟）
func UtcNow() time.Time { return MustCurrent().UtcNow() }

// Since 返回从 t 到现在的持续时间
func Since(t time.Time) time.Duration { return MustCurrent().Since(t) }

// NowUnix 返回当前Unix秒时间戳（uint64）
func NowUnix() uint64 { return uint64(MustCurrent().Unix()) }
