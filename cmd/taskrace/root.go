package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/taskrace/internal/app"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string // 配置文件路径
	WithAPI    bool   // 运行期间开启 /metrics 与 /health
}

var globalFlags GlobalFlags

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "taskrace",
	Short: "条件竞速与时钟回放演示",
	Long: `taskrace - 条件竞速与可替换时钟的演示程序

whatsmyip 同时请求多个公网IP查询端点，返回第一个内容是合法IP的响应；
replay 用实时时钟录制快照，再用测试时钟逐条回放并校验结果完全一致。

配置文件查找顺序: --config > $TASKRACE_CONFIG > ./configs/taskrace.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.WithAPI, "api", false, "运行期间开启指标HTTP端点")

	rootCmd.AddCommand(whatsmyipCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// appOptions 由全局标志生成应用选项
func appOptions(extra ...app.Option) []app.Option {
	opts := []app.Option{app.WithConfigFile(globalFlags.ConfigFile)}
	if globalFlags.WithAPI {
		opts = append(opts, app.WithOverride(enableMetrics))
	} else {
		opts = append(opts, app.WithoutAPI())
	}
	return append(opts, extra...)
}
