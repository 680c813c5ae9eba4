package config

import "github.com/weisyn/taskrace/pkg/types"

// AppOptions 由应用层提供的原始配置来源（配置文件 + 命令行覆盖项）
//
// 返回 nil 表示全部使用默认值。
type AppOptions interface {
	GetAppConfig() *types.AppConfig
}
