package main

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/taskrace/internal/app"
)

var (
	sessionsStore   string
	sessionsRedisDB int
)

// sessionsCmd 列出已保存的会话
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "列出已保存的录制会话",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		override := recorderOverride(0, 0, sessionsStore, sessionsRedisDB)
		return app.Run(cmd.Context(), func(ctx context.Context, a *app.App) error {
			ids, err := a.Replay.Sessions(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				pterm.Info.Println("暂无录制会话")
				return nil
			}

			data := pterm.TableData{{"#", "Session"}}
			for i, id := range ids {
				data = append(data, []string{pterm.Sprint(i + 1), id})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		}, appOptions(app.WithOverride(override))...)
	},
}

func init() {
	sessionsCmd.Flags().StringVarP(&sessionsStore, "store", "s", "", "会话存储: memory|badger|redis（默认取配置）")
	sessionsCmd.Flags().IntVar(&sessionsRedisDB, "redis-db", -1, "Redis 数据库编号（默认取配置）")
}
