// Package app 负责装配并运行 taskrace 应用
//
// 📋 **应用装配 (Application Assembly)**
//
// 读取配置文件与命令行覆盖项，按层次加载 fx 模块，
// 并把命令行需要的服务（IP 解析器、录制服务、日志）交给调用方。
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/weisyn/taskrace/internal/core/ipresolver"
	"github.com/weisyn/taskrace/internal/core/replay"
	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
)

// stopTimeout 停止应用的最长等待时间，需覆盖 BadgerDB 关闭
const stopTimeout = 30 * time.Second

// App 已启动的应用
type App struct {
	fxApp *fx.App

	Provider config.Provider
	Logger   log.Logger
	Resolver *ipresolver.Resolver
	Replay   *replay.Service
}

// Start 装配并启动应用
func Start(ctx context.Context, opts ...Option) (*App, error) {
	o := newOptions(opts...)
	if err := o.loadAppConfig(); err != nil {
		return nil, err
	}

	a := &App{}
	modules := newBootstrap(o).SetupModules()
	a.fxApp = fx.New(
		fx.Options(modules...),
		// 禁用fx内部日志
		fx.NopLogger,
		fx.Populate(&a.Provider, &a.Logger, &a.Resolver, &a.Replay),
	)
	if err := a.fxApp.Err(); err != nil {
		return nil, fmt.Errorf("装配应用失败: %w", err)
	}

	if err := a.fxApp.Start(ctx); err != nil {
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}
	return a, nil
}

// Stop 停止应用（执行所有生命周期钩子）
func (a *App) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := a.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// Run 启动应用，执行 fn，然后停止应用
//
// fn 收到的 ctx 会在 SIGINT/SIGTERM 时取消。
func Run(ctx context.Context, fn func(ctx context.Context, a *App) error, opts ...Option) (err error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := Start(ctx, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := a.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	return fn(ctx, a)
}
