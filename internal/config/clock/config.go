package clock

import (
	"os"
	"strconv"
	"time"

	"github.com/weisyn/taskrace/pkg/types"
)

// ClockOptions 时钟配置
type ClockOptions struct {
	Type            string        `json:"type"` // system | ntp | test | deterministic
	NTPServer       string        `json:"ntp_server"`
	SyncInterval    time.Duration `json:"sync_interval"`
	OffsetThreshold time.Duration `json:"offset_threshold"` // 判定不健康的偏移阈值

	// 回退与重试
	BackoffInitial time.Duration `json:"backoff_initial"`
	BackoffMax     time.Duration `json:"backoff_max"`

	// test / deterministic 时钟的基准时间
	DeterministicBaseUnix int64 `json:"deterministic_base_unix"`
}

// Config 提供访问选项
type Config struct {
	options *ClockOptions
}

// New 创建配置：默认值 -> 用户配置 -> 环境变量
// 环境变量：
//
//	CLOCK_TYPE (system|ntp|test|deterministic)
//	CLOCK_NTP_SERVER (如 time.google.com)
//	CLOCK_SYNC_INTERVAL_MS
//	CLOCK_OFFSET_THRESHOLD_MS
//	CLOCK_BACKOFF_INITIAL_MS
//	CLOCK_BACKOFF_MAX_MS
//	CLOCK_DETERMINISTIC_BASE_UNIX
func New(userConfig *types.UserClockConfig) *Config {
	opts := &ClockOptions{
		Type:                  defaultType,
		NTPServer:             defaultNTPServer,
		SyncInterval:          defaultSyncInterval,
		OffsetThreshold:       defaultOffsetThreshold,
		BackoffInitial:        defaultBackoffInitial,
		BackoffMax:            defaultBackoffMax,
		DeterministicBaseUnix: 0,
	}

	if userConfig != nil {
		if userConfig.Type != nil {
			opts.Type = *userConfig.Type
		}
		if userConfig.NTPServer != nil {
			opts.NTPServer = *userConfig.NTPServer
		}
		if userConfig.SyncIntervalMs != nil {
			opts.SyncInterval = time.Duration(*userConfig.SyncIntervalMs) * time.Millisecond
		}
	}

	if v := os.Getenv("CLOCK_TYPE"); v != "" {
		opts.Type = v
	}
	if v := os.Getenv("CLOCK_NTP_SERVER"); v != "" {
		opts.NTPServer = v
	}
	if d, ok := envMillis("CLOCK_SYNC_INTERVAL_MS"); ok {
		opts.SyncInterval = d
	}
	if d, ok := envMillis("CLOCK_OFFSET_THRESHOLD_MS"); ok {
		opts.OffsetThreshold = d
	}
	if d, ok := envMillis("CLOCK_BACKOFF_INITIAL_MS"); ok {
		opts.BackoffInitial = d
	}
	if d, ok := envMillis("CLOCK_BACKOFF_MAX_MS"); ok {
		opts.BackoffMax = d
	}
	if v := os.Getenv("CLOCK_DETERMINISTIC_BASE_UNIX"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			opts.DeterministicBaseUnix = n
		}
	}

	return &Config{options: opts}
}

func envMillis(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(n) * time.Millisecond, true
}

func (c *Config) GetOptions() *ClockOptions { return c.options }
