package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/weisyn/taskrace/configs"
	"github.com/weisyn/taskrace/pkg/types"
)

const (
	// ConfigEnvVar 指定配置文件路径的环境变量
	ConfigEnvVar = "TASKRACE_CONFIG"

	// DefaultConfigPath 默认配置文件路径
	DefaultConfigPath = "./configs/taskrace.json"
)

// resolveConfigPath 确定配置文件路径
// 优先级：显式路径 > 环境变量 > 默认路径
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfigFile 读取 JSON 配置文件
//
// 文件不存在时使用嵌入的默认配置；文件存在但无法解析时返回错误。
func LoadConfigFile(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		path, data = "<embedded>", configs.GetDefaultConfig()
	} else if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	return parseConfig(path, data)
}

func parseConfig(source string, data []byte) (*types.AppConfig, error) {
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", source, err)
	}
	return &appConfig, nil
}

// loadAppConfig 按选项装配最终配置并写回 options
func (o *options) loadAppConfig() error {
	if o.appConfig == nil {
		appConfig, err := LoadConfigFile(resolveConfigPath(o.configFilePath))
		if err != nil {
			return err
		}
		o.appConfig = appConfig
	}

	for _, override := range o.overrides {
		override(o.appConfig)
	}

	return createDataDirectories(o.appConfig)
}

// createDataDirectories 根据配置创建数据目录
func createDataDirectories(appConfig *types.AppConfig) error {
	var directories []string

	// 1. 日志目录
	if appConfig.Log != nil && appConfig.Log.FilePath != nil && *appConfig.Log.FilePath != "" {
		directories = append(directories, filepath.Dir(*appConfig.Log.FilePath))
	}

	// 2. BadgerDB 目录（仅在选择 badger 存储时创建）
	if rec := appConfig.Recorder; rec != nil && rec.Store != nil && *rec.Store == "badger" &&
		rec.BadgerPath != nil && *rec.BadgerPath != "" {
		directories = append(directories, *rec.BadgerPath)
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建目录 %s 失败: %w", dir, err)
		}
	}
	return nil
}
