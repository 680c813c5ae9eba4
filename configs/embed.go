// Package configs 嵌入默认配置文件
package configs

import _ "embed"

// 与 ./configs/taskrace.json 同步，未找到配置文件时使用
//
//go:embed taskrace.json
var defaultConfig []byte

// GetDefaultConfig 获取嵌入的默认配置
func GetDefaultConfig() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}
