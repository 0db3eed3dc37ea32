package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wangdayong228/lw3punks-client/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "minted",
		Short: "查询合约已铸造的 tokenIds 数量",
		RunE:  runMinted,
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "", "配置文件路径（YAML）")

	err := cmd.MarkFlagRequired("config")
	if err != nil {
		panic(fmt.Sprintf("mark 'config' flag required error: %v", err))
	}

	rootCmd.AddCommand(cmd)
}

func runMinted(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.LoadConfigFromFile(configPath)
	session, err := newSession(cfg, printNotice)
	if err != nil {
		return fmt.Errorf("minted 失败：%w", err)
	}
	defer session.Close()

	if err := session.RefreshMinted(ctx); err != nil {
		return fmt.Errorf("minted 失败：%w", err)
	}
	fmt.Printf("%s/%d have been minted\n", session.Snapshot().MintedCount, cfg.MaxSupply)
	return nil
}
