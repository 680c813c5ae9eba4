package recorder

import "time"

const (
	// defaultDuration 默认录制10秒
	defaultDuration = 10 * time.Second

	// defaultInterval 默认每秒采样一次
	defaultInterval = time.Second

	defaultStore      = StoreMemory
	defaultBadgerPath = "./data/sessions"
	defaultRedisAddr  = "localhost:6379"
	defaultKeyPrefix  = "taskrace:session:"
)
