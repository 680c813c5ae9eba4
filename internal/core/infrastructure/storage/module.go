package storage

import (
	"go.uber.org/fx"

	"github.com/weisyn/taskrace/pkg/interfaces/config"
	"github.com/weisyn/taskrace/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/taskrace/pkg/interfaces/infrastructure/storage"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Provider  config.Provider // 配置提供者
	Logger    log.Logger      `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	SessionStore storageInterface.SessionStore
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建会话存储，并在应用停止时关闭
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	opts := params.Provider.GetRecorder()
	store, err := New(opts, params.Logger)
	if err != nil {
		return ModuleOutput{}, err
	}

	if params.Logger != nil {
		params.Logger.With("module", "storage").Infof("会话存储已就绪: type=%s", opts.Store)
	}

	params.Lifecycle.Append(fx.StopHook(func() error {
		return store.Close()
	}))

	return ModuleOutput{SessionStore: store}, nil
}
