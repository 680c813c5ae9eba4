package race

import "time"

// defaultTimeout 默认整体截止时间设为30秒
var defaultTimeout = 30 * time.Second
