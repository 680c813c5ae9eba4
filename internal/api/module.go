// Package api 汇总对外端点
package api

import (
	"github.com/weisyn/taskrace/internal/api/http"
	"go.uber.org/fx"
)

// Module 返回API模块
// 目前只有指标/健康检查的 HTTP 端点，按 metrics.enabled 决定是否监听
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
	)
}
