// Package types provides shared type definitions.
package types

// AppConfig 应用配置（对应配置文件的顶层结构）
//
// 🔧 零值陷阱处理说明：
// 所有字段都使用指针类型，用于区分"用户未设置"和"用户设置为零值"：
// - nil: 用户未在配置文件中设置该字段，使用系统默认值
// - &value: 用户明确设置了该值，即使是零值也会被采用
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	Log      *UserLogConfig      `json:"log,omitempty"`      // 日志配置
	Clock    *UserClockConfig    `json:"clock,omitempty"`    // 时钟配置
	Race     *UserRaceConfig     `json:"race,omitempty"`     // 条件竞速配置
	Lookup   *UserLookupConfig   `json:"lookup,omitempty"`   // 公网IP查询配置
	Recorder *UserRecorderConfig `json:"recorder,omitempty"` // 快照录制配置
	Metrics  *UserMetricsConfig  `json:"metrics,omitempty"`  // 指标配置
	Event    *UserEventConfig    `json:"event,omitempty"`    // 事件配置
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// UserClockConfig 用户时钟配置
type UserClockConfig struct {
	Type           *string `json:"type,omitempty"`             // system | ntp | test | deterministic
	NTPServer      *string `json:"ntp_server,omitempty"`       // NTP 服务器地址
	SyncIntervalMs *int64  `json:"sync_interval_ms,omitempty"` // 同步间隔（毫秒）
}

// UserRaceConfig 用户条件竞速配置
type UserRaceConfig struct {
	TimeoutMs *int64 `json:"timeout_ms,omitempty"` // 整体超时（毫秒）
}

// UserLookupConfig 用户公网IP查询配置
type UserLookupConfig struct {
	URLs         []string `json:"urls,omitempty"`           // 候选查询端点
	StartDelayMs *int64   `json:"start_delay_ms,omitempty"` // 每个请求启动前的延迟（毫秒）
	MaxBodyBytes *int64   `json:"max_body_bytes,omitempty"` // 响应体读取上限
}

// UserRecorderConfig 用户快照录制配置
type UserRecorderConfig struct {
	DurationMs *int64  `json:"duration_ms,omitempty"` // 录制时长（毫秒）
	IntervalMs *int64  `json:"interval_ms,omitempty"` // 采样间隔（毫秒）
	Store      *string `json:"store,omitempty"`       // memory | badger | redis
	BadgerPath *string `json:"badger_path,omitempty"` // BadgerDB 数据目录
	RedisAddr  *string `json:"redis_addr,omitempty"`  // Redis 地址
	RedisDB    *int    `json:"redis_db,omitempty"`    // Redis 数据库编号
	KeyPrefix  *string `json:"key_prefix,omitempty"`  // Redis Key 前缀
}

// UserMetricsConfig 用户指标配置
type UserMetricsConfig struct {
	Enabled *bool   `json:"enabled,omitempty"` // 是否启用 /metrics 端点
	Addr    *string `json:"addr,omitempty"`    // 监听地址
}

// UserEventConfig 用户事件配置
type UserEventConfig struct {
	Enabled *bool `json:"enabled,omitempty"` // 是否启用事件总线
}
