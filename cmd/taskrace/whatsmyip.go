package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/weisyn/taskrace/internal/app"
	"github.com/weisyn/taskrace/internal/core/ipresolver"
)

var whatsmyipMode string

// whatsmyipCmd 公网IP竞速查询
var whatsmyipCmd = &cobra.Command{
	Use:   "whatsmyip",
	Short: "并发查询公网IP，取第一个合法结果",
	Long: `并发请求配置中的全部公网IP端点，第一个响应体能解析为IP地址的端点获胜。

--mode first  报告获胜端点
--mode any    每个请求延迟启动后再竞速，只取值`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := ipresolver.ParseMode(whatsmyipMode)
		if err != nil {
			return err
		}

		return app.Run(cmd.Context(), func(ctx context.Context, a *app.App) error {
			res, err := a.Resolver.Resolve(ctx, mode)
			if errors.Is(err, ipresolver.ErrNoAddress) {
				return fmt.Errorf("%w (outcome=%s, failures=%d)", err, res.Outcome, res.Failures)
			}
			if err != nil {
				return err
			}

			if mode == ipresolver.ModeAny {
				pterm.FgYellow.Printfln("Profile created for user on address %s", res.Address)
			} else {
				pterm.FgYellow.Printfln("Profile created for user on %s", res.Address)
				pterm.FgGray.Printfln("endpoint #%d %s", res.Index, res.URL)
			}
			return nil
		}, appOptions()...)
	},
}

func init() {
	whatsmyipCmd.Flags().StringVarP(&whatsmyipMode, "mode", "m", string(ipresolver.ModeFirst), "解析模式: first|any")
}
