// Package types provides event type definitions.
package types

import "time"

// EventType 事件类型
type EventType string

const (
	// EventTypeOperationFailed 竞速中的单个操作失败
	EventTypeOperationFailed EventType = "race.operation.failed"
	// EventTypeRaceFinished 一次竞速结束（无论是否命中）
	EventTypeRaceFinished EventType = "race.finished"
	// EventTypeSnapshotCaptured 录制器捕获了一个快照
	EventTypeSnapshotCaptured EventType = "replay.snapshot.captured"
	// EventTypeClockInstalled 进程级时钟被替换
	EventTypeClockInstalled EventType = "clock.installed"
)

// OperationFailure 操作失败事件负载
type OperationFailure struct {
	Label      string    `json:"label"`
	Error      string    `json:"error"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RaceFinished 竞速结束事件负载
type RaceFinished struct {
	Label    string        `json:"label"`
	Outcome  string        `json:"outcome"`
	Elapsed  time.Duration `json:"elapsed"`
	Failures int           `json:"failures"`
}

// ClockInstalled 时钟替换事件负载
type ClockInstalled struct {
	Kind        string    `json:"kind"` // 时钟类型（system/ntp/test/deterministic）
	InstalledAt time.Time `json:"installed_at"`
}
