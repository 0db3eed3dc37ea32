package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wangdayong228/lw3punks-client/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "连接钱包并发起一次 Public Mint",
		RunE:  runMint,
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "", "配置文件路径（YAML）")

	err := cmd.MarkFlagRequired("config")
	if err != nil {
		panic(fmt.Sprintf("mark 'config' flag required error: %v", err))
	}

	rootCmd.AddCommand(cmd)
}

func runMint(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfigFromFile(configPath)
	session, err := newSession(cfg, printNotice)
	if err != nil {
		return fmt.Errorf("mint 失败：%w", err)
	}
	defer session.Close()

	if err := session.Connect(ctx); err != nil {
		return fmt.Errorf("mint 失败：%w", err)
	}
	if err := session.PublicMint(ctx); err != nil {
		return fmt.Errorf("mint 失败：%w", err)
	}

	if err := session.RefreshMinted(ctx); err == nil {
		fmt.Printf("%s/%d have been minted\n", session.Snapshot().MintedCount, cfg.MaxSupply)
	}
	return nil
}
