package types

import (
	"fmt"
	"time"
)

// Snapshot 一次时钟采样得到的不可变记录
//
// X 为毫秒内的微秒分量（0~999），Y 为秒内的毫秒分量（0~999）。
// CreatedUtc 统一为 UTC 且不带单调时钟读数，保证结构相等可直接用 == 比较。
type Snapshot struct {
	CreatedUtc time.Time `json:"created_utc"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
}

// NewSnapshot 从一个时间戳派生快照
func NewSnapshot(t time.Time) Snapshot {
	utc := t.UTC().Round(0)
	nanos := utc.Nanosecond()
	return Snapshot{
		CreatedUtc: utc,
		X:          (nanos / int(time.Microsecond)) % 1000,
		Y:          (nanos / int(time.Millisecond)) % 1000,
	}
}

// Equal 结构相等比较
func (s Snapshot) Equal(other Snapshot) bool {
	return s.CreatedUtc.Equal(other.CreatedUtc) && s.X == other.X && s.Y == other.Y
}

func (s Snapshot) String() string {
	return fmt.Sprintf("Snapshot { CreatedUtc = %s, X = %d, Y = %d }",
		s.CreatedUtc.Format(time.RFC3339Nano), s.X, s.Y)
}

// RecordingSession 一次完整录制会话
type RecordingSession struct {
	ID         string     `json:"id"`
	StartedUtc time.Time  `json:"started_utc"`
	Snapshots  []Snapshot `json:"snapshots"`
}
