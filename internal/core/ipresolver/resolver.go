// Package ipresolver 通过条件竞速查询本机公网IP
//
// 🌐 **公网IP解析 (Public IP Resolver)**
//
// 同时请求多个"查询我的公网IP"端点，取第一个响应体能解析为IP地址的结果：
// - 不存在的域名、非 2xx 状态、非IP响应体都只算作不匹配
// - first 模式立即发出全部请求，报告获胜端点的下标
// - any 模式在每个请求前等待 StartDelay，只关心解析出的地址
package ipresolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"

	lookupconfig "github.com/weisyn/taskrace/internal/config/lookup"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/taskrace/pkg/utils/race"
)

// ErrNoAddress 所有端点都没有给出IP地址
var ErrNoAddress = errors.New("no IP address resolved, is there no internet access?")

// Mode 解析模式
type Mode string

const (
	ModeFirst Mode = "first" // 报告获胜下标
	ModeAny   Mode = "any"   // 只取值，请求前延迟启动
)

// ParseMode 解析模式字符串
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFirst, "":
		return ModeFirst, nil
	case ModeAny:
		return ModeAny, nil
	default:
		return "", fmt.Errorf("未知的解析模式: %q（可选 first|any）", s)
	}
}

// Result 解析结果
type Result struct {
	Address  netip.Addr
	URL      string // 获胜端点
	Index    int    // 获胜端点下标
	Outcome  race.Outcome
	Failures int
}

// Resolver 公网IP解析器
type Resolver struct {
	client  *http.Client
	opts    *lookupconfig.LookupOptions
	timeout time.Duration
	raceOps []race.Option
	logger  log.Logger
}

// New 创建解析器
// timeout 为整次竞速的截止时间；raceOpts 追加到每次竞速（错误接收者、观察者等）
func New(client *http.Client, opts *lookupconfig.LookupOptions, timeout time.Duration, logger log.Logger, raceOpts ...race.Option) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	if opts == nil {
		opts = lookupconfig.New(nil).GetOptions()
	}
	return &Resolver{
		client:  client,
		opts:    opts,
		timeout: timeout,
		raceOps: raceOpts,
		logger:  logger,
	}
}

// IsIPAddress 响应体（去除首尾空白后）是否为IPv4/IPv6地址
func IsIPAddress(body string) bool {
	_, err := netip.ParseAddr(strings.TrimSpace(body))
	return err == nil
}

// Operations 为每个端点构造一个竞速操作
func (r *Resolver) Operations(startDelay time.Duration) []race.Operation[string] {
	ops := make([]race.Operation[string], len(r.opts.URLs))
	for i, url := range r.opts.URLs {
		ops[i] = r.fetch(url, startDelay)
	}
	return ops
}

func (r *Resolver) fetch(url string, startDelay time.Duration) race.Operation[string] {
	return func(ctx context.Context) (string, error) {
		if startDelay > 0 {
			timer := time.NewTimer(startDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("构造请求失败 %s: %w", url, err)
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", fmt.Errorf("%s 返回状态码 %d", url, resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, r.opts.MaxBodyBytes))
		if err != nil {
			return "", fmt.Errorf("读取响应失败 %s: %w", url, err)
		}
		return strings.TrimSpace(string(body)), nil
	}
}

// Resolve 按模式竞速查询公网IP
// 无结果时返回 ErrNoAddress，Result 中仍带有结束原因与失败数
func (r *Resolver) Resolve(ctx context.Context, mode Mode) (Result, error) {
	var delay time.Duration
	if mode == ModeAny {
		delay = r.opts.StartDelay
	}

	opts := append([]race.Option{
		race.WithTimeout(r.timeout),
		race.WithLabel("whatsmyip"),
	}, r.raceOps...)

	res, err := race.Run(ctx, r.Operations(delay), IsIPAddress, opts...)
	out := Result{Index: res.Index, Outcome: res.Outcome, Failures: res.Failures}
	if err != nil {
		return out, fmt.Errorf("解析公网IP失败: %w", err)
	}
	if !res.Found() {
		if r.logger != nil {
			r.logger.Warnf("未解析到公网IP: outcome=%s failures=%d", res.Outcome, res.Failures)
		}
		return out, ErrNoAddress
	}

	out.URL = r.opts.URLs[res.Index]
	out.Address = netip.MustParseAddr(res.Value)
	if r.logger != nil {
		r.logger.Debugf("公网IP来自 %s (#%d): %s", out.URL, out.Index, out.Address)
	}
	return out, nil
}
