package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "lw3punks-client",
	Short: "LW3Punks NFT 部署与铸造页面的命令行客户端",
	Long:  "lw3punks-client 是一款用 Go 编写的 CLI 工具，用于部署 LW3Punks 合约、启动铸造页面，并在终端中查询或发起 mint。",
	// 错误统一由 Execute 输出一次
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("日志级别不合法: %w", err)
		}
		logrus.SetLevel(lvl)
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "日志级别（debug/info/warn/error）")
}

// Execute 入口
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
