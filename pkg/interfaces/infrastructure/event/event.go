// Package event 提供事件总线接口定义
//
// 🎯 **事件总线 (Event Bus)**
//
// 进程内的发布/订阅通道，用于把竞速与录制过程中的事实广播给
// 日志、指标、控制台等旁路观察者：
// - 同步订阅：发布方在当前 goroutine 内依次调用处理器
// - 异步订阅：处理器在独立 goroutine 中执行，WaitAsync 等待其完成
// - 事件系统被禁用时，所有操作静默成功
package event

import "github.com/weisyn/taskrace/pkg/types"

// 兼容别名
type EventType = types.EventType

// EventBus 事件总线接口
type EventBus interface {
	// Subscribe 订阅事件
	Subscribe(eventType EventType, handler interface{}) error
	// SubscribeAsync 异步订阅事件
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error
	// SubscribeOnce 一次性订阅事件
	SubscribeOnce(eventType EventType, handler interface{}) error
	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})
	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error
	// WaitAsync 等待所有异步处理完成
	WaitAsync()
	// HasCallback 是否存在该事件类型的订阅者
	HasCallback(eventType EventType) bool
}
