// Package clock provides clock interfaces.
package clock

import "time"

// Clock 提供统一的时间源接口（基础设施层接口）
//
// 设计目标：
// - 可替换：进程内所有需要"当前时间"的代码都通过同一个入口读取
// - 可回放：测试时钟可以按录制的时间序列逐一设置，得到逐位一致的派生值
// - 可扩展：可切换为NTP校正时钟
type Clock interface {
	// Now 获取当前本地时间
	Now() time.Time

	// UtcNow 获取当前UTC时间
	UtcNow() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration

	// Unix 获取当前Unix时间戳（秒）
	Unix() int64

	// UnixNano 获取当前Unix时间戳（纳秒）
	UnixNano() int64
}

// SettableClock 可直接设置当前值的时钟（测试/回放）
type SettableClock interface {
	Clock

	// Set 覆盖当前时间，之后的读取严格返回该值
	Set(t time.Time)
}
