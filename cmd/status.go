package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	mintuisdk "github.com/wangdayong228/lw3punks-client/pkg/mintui-sdk"
)

var (
	serverURL     string
	drainFlag     bool
	connectFlag   bool
	statusTimeout time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "查询运行中的铸造页面状态",
		RunE:  runStatus,
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "铸造页面地址")
	cmd.Flags().BoolVar(&drainFlag, "drain", false, "读取并清空待展示的提示")
	cmd.Flags().BoolVar(&connectFlag, "connect", false, "查询前先让页面连接钱包")
	cmd.Flags().DurationVar(&statusTimeout, "timeout", 10*time.Second, "请求超时时间")

	rootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := mintuisdk.New(serverURL, mintuisdk.WithTimeout(statusTimeout))

	if connectFlag {
		if _, err := client.Page.Connect(ctx); err != nil {
			return fmt.Errorf("status 失败：%w", err)
		}
	}

	st, err := client.Page.GetState(ctx, drainFlag)
	if err != nil {
		return fmt.Errorf("status 失败：%w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "connected: %v\n", st.Connected)
	fmt.Fprintf(out, "button:    %s\n", st.Button)
	fmt.Fprintf(out, "minted:    %s/%d\n", st.MintedCount, st.MaxSupply)
	for _, n := range st.Notices {
		fmt.Fprintf(out, "[%s] %s\n", n.Level, n.Message)
	}
	return nil
}
