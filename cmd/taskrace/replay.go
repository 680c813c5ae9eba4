package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/taskrace/internal/app"
	"github.com/weisyn/taskrace/pkg/types"
)

// ReplayFlags replay 子命令标志
type ReplayFlags struct {
	Duration  time.Duration // 录制时长
	Interval  time.Duration // 采样间隔
	Store     string        // memory | badger | redis
	SessionID string        // 只回放已保存的会话，不重新录制；latest 表示最近一次
	RedisDB   int           // Redis 数据库编号，负数表示取配置
}

var replayFlags ReplayFlags

// replayCmd 录制并回放
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "录制时钟快照并确定性回放",
	Long: `用当前时钟（system 或 ntp）每个采样间隔录制一次快照，直到录制时长耗尽，
保存会话后安装测试时钟，逐条设置录制时的时间戳并重新采样，校验结果完全一致。

指定 --session 时跳过录制，直接回放存储中的会话（需配合 badger 或 redis 存储）；
--session latest 回放最近一次录制的会话。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		override := recorderOverride(replayFlags.Duration, replayFlags.Interval, replayFlags.Store, replayFlags.RedisDB)
		return app.Run(cmd.Context(), runReplay, appOptions(app.WithOverride(override))...)
	},
}

func runReplay(ctx context.Context, a *app.App) error {
	id, err := resolveSessionID(ctx, replayFlags.SessionID, a.Replay.Latest)
	if err != nil {
		return err
	}
	if id == "" {
		session, err := record(ctx, a)
		if err != nil {
			return err
		}
		id = session.ID
	}

	pterm.Println()
	pterm.DefaultSection.Println("Will now replay")

	session, replayed, err := a.Replay.Replay(ctx, id, func(i int, s types.Snapshot) {
		pterm.Printfln("%s %s", pterm.Green("✔"), s.String())
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("会话 %s 的 %d 条快照全部按原值重现", session.ID, len(replayed))
	return nil
}

// record 录制一个会话，在同一区域内刷新当前快照
func record(ctx context.Context, a *app.App) (*types.RecordingSession, error) {
	opts := a.Replay.Options()
	pterm.Info.Printfln("录制 %s，每 %s 采样一次，存储: %s", opts.Duration, opts.Interval, opts.Store)

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return nil, fmt.Errorf("初始化终端区域失败: %w", err)
	}
	session, err := a.Replay.Record(ctx, 0, 0, func(i int, s types.Snapshot) {
		area.Update(pterm.Sprintf("#%d %s", i, s.String()))
	})
	_ = area.Stop()
	if err != nil {
		return nil, err
	}

	pterm.Success.Printfln("已录制 %d 条快照 (session %s)", len(session.Snapshots), session.ID)
	return session, nil
}

func init() {
	replayCmd.Flags().DurationVarP(&replayFlags.Duration, "duration", "d", 0, "录制时长，如 10s（默认取配置）")
	replayCmd.Flags().DurationVarP(&replayFlags.Interval, "interval", "i", 0, "采样间隔，如 1s（默认取配置）")
	replayCmd.Flags().StringVarP(&replayFlags.Store, "store", "s", "", "会话存储: memory|badger|redis（默认取配置）")
	replayCmd.Flags().StringVar(&replayFlags.SessionID, "session", "", "回放已保存的会话 ID（latest 表示最近一次），跳过录制")
	replayCmd.Flags().IntVar(&replayFlags.RedisDB, "redis-db", -1, "Redis 数据库编号（默认取配置）")
}
