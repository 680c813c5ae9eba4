package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
	infraClock "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/clock"
)

// queryFunc 查询 NTP 服务器，测试中可替换
type queryFunc func(server string) (*ntp.Response, error)

// NTPOptions NTP时钟参数
type NTPOptions struct {
	Server             string
	SyncInterval       time.Duration
	BackoffInitial     time.Duration
	BackoffMax         time.Duration
	UnhealthyThreshold time.Duration
}

// NTPClock 通过NTP周期性校正偏移的时钟实现
type NTPClock struct {
	mu   sync.Mutex
	opts NTPOptions

	query     queryFunc
	offset    time.Duration
	lastSync  time.Time
	backoff   time.Duration
	lastError error
	syncing   bool // 后台同步进行中，同一时刻至多一个
}

// NewNTPClock 创建NTP时钟
// server 例如 "time.google.com"，syncInterval 建议 5~10 分钟
func NewNTPClock(opts NTPOptions) (*NTPClock, error) {
	return newNTPClock(opts, queryServer)
}

func newNTPClock(opts NTPOptions, query queryFunc) (*NTPClock, error) {
	if opts.Server == "" {
		return nil, fmt.Errorf("ntp clock: server is required")
	}
	if opts.SyncInterval <= 0 {
		opts.SyncInterval = 5 * time.Minute
	}
	if opts.BackoffInitial <= 0 {
		opts.BackoffInitial = 5 * time.Second
	}
	if opts.BackoffMax <= 0 {
		opts.BackoffMax = 5 * time.Minute
	}
	c := &NTPClock{opts: opts, query: query}

	// 初始化失败不致命，偏移保持为零，后续按退避重试
	resp, err := c.query(c.opts.Server)
	c.mu.Lock()
	c.applyLocked(resp, err)
	c.mu.Unlock()
	return c, nil
}

func queryServer(server string) (*ntp.Response, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *NTPClock) Now() time.Time {
	return time.Now().Add(c.currentOffset())
}

func (c *NTPClock) UtcNow() time.Time               { return c.Now().UTC() }
func (c *NTPClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }
func (c *NTPClock) Unix() int64                     { return c.Now().Unix() }
func (c *NTPClock) UnixNano() int64                 { return c.Now().UnixNano() }

// Offset 当前使用的偏移量
func (c *NTPClock) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Health 返回当前健康状态与关键指标
// healthy: 最近一次同步无错误，且偏移量在阈值内
func (c *NTPClock) Health() (healthy bool, offset time.Duration, lastSync time.Time, lastError error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	offset, lastSync, lastError = c.offset, c.lastSync, c.lastError
	if lastError != nil {
		return false, offset, lastSync, lastError
	}
	// 偏移阈值未配置时不启用该检查
	if t := c.opts.UnhealthyThreshold; t > 0 && (offset < -t || offset > t) {
		return false, offset, lastSync, nil
	}
	return true, offset, lastSync, nil
}

// currentOffset 返回当前偏移；到期时在后台发起同步，不在锁内等待网络
func (c *NTPClock) currentOffset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.syncing && c.syncDueLocked() {
		c.syncing = true
		go c.resync()
	}
	return c.offset
}

func (c *NTPClock) syncDueLocked() bool {
	// 动态计算有效同步间隔（含退避）
	effective := c.opts.SyncInterval
	if c.backoff > 0 {
		if c.backoff > c.opts.BackoffMax {
			c.backoff = c.opts.BackoffMax
		}
		effective = c.backoff
	}
	return time.Since(c.lastSync) >= effective
}

func (c *NTPClock) resync() {
	resp, err := c.query(c.opts.Server)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(resp, err)
	c.syncing = false
}

func (c *NTPClock) applyLocked(resp *ntp.Response, err error) {
	c.lastSync = time.Now()
	if err != nil {
		c.lastError = fmt.Errorf("query ntp server %s: %w", c.opts.Server, err)
		if c.backoff == 0 {
			c.backoff = c.opts.BackoffInitial
		} else {
			c.backoff *= 2
		}
		return
	}
	// 成功，清零退避
	c.offset = resp.ClockOffset
	c.lastError = nil
	c.backoff = 0
}

var _ infraClock.Clock = (*NTPClock)(nil)
