package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wangdayong228/lw3punks-client/internal/config"
	"github.com/wangdayong228/lw3punks-client/internal/server"
)

var listenFlag string

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动铸造页面（HTML + JSON API）",
		Long:  "启动铸造页面服务：连接钱包、每隔 pollInterval 刷新已铸造数量，并提供 Connect / Public Mint 操作。收到 SIGINT/SIGTERM 后停止轮询并退出。",
		RunE:  runServe,
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "", "配置文件路径（YAML）")
	cmd.Flags().StringVar(&listenFlag, "listen", "", "覆盖配置文件中的监听地址（可选）")

	err := cmd.MarkFlagRequired("config")
	if err != nil {
		panic(fmt.Sprintf("mark 'config' flag required error: %v", err))
	}

	rootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfigFromFile(configPath)
	if listenFlag != "" {
		cfg.Listen = listenFlag
	}

	session, err := newSession(cfg, nil)
	if err != nil {
		return fmt.Errorf("serve 失败：%w", err)
	}
	defer session.Close()

	srv := server.New(session, server.Options{
		MaxSupply:    cfg.MaxSupply,
		PollInterval: cfg.PollInterval,
	})
	if err := srv.Run(ctx, cfg.Listen); err != nil {
		return fmt.Errorf("serve 失败：%w", err)
	}
	return nil
}
