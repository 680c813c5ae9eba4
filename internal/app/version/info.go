// Package version 提供构建版本信息
package version

import (
	"fmt"
	"runtime"
	"time"
)

// 构建时通过 -ldflags "-X" 注入
var (
	Version   = "v0.1.0"
	Commit    = "unknown"
	BuildTime = "unknown" // RFC3339
)

// Info 构建信息
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get 获取当前二进制的构建信息
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String 多行可读格式
func (i Info) String() string {
	s := fmt.Sprintf("taskrace %s (%s)", i.Version, i.Commit)
	if i.BuildTime != "unknown" {
		if t, err := time.Parse(time.RFC3339, i.BuildTime); err == nil {
			s += fmt.Sprintf("\n构建时间: %s", t.Format("2006-01-02 15:04:05 MST"))
		} else {
			s += fmt.Sprintf("\n构建时间: %s", i.BuildTime)
		}
	}
	s += fmt.Sprintf("\nGo版本: %s\n平台: %s", i.GoVersion, i.Platform)
	return s
}
