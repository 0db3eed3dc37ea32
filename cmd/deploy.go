package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
	"github.com/wangdayong228/lw3punks-client/internal/config"
	"github.com/wangdayong228/lw3punks-client/internal/deployer"
	"github.com/wangdayong228/lw3punks-client/internal/keysource"
)

var (
	configPath      string
	metadataURIFlag string
	compileFlag     bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "部署 LW3Punks 合约并输出合约地址",
		Long:  "读取 hardhat 编译产物，以 metadata base URI 作为构造参数部署 LW3Punks 合约，等待上链确认后输出合约地址。",
		RunE:  runDeploy,
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "", "配置文件路径（YAML）")
	cmd.Flags().StringVar(&metadataURIFlag, "metadata-uri", "", "覆盖配置文件中的 metadataUri（可选）")
	cmd.Flags().BoolVar(&compileFlag, "compile", false, "部署前执行 npx hardhat compile（等同 compileBeforeDeploy=true）")

	err := cmd.MarkFlagRequired("config")
	if err != nil {
		panic(fmt.Sprintf("mark 'config' flag required error: %v", err))
	}

	rootCmd.AddCommand(cmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfigFromFile(configPath)
	if metadataURIFlag != "" {
		cfg.MetadataUri = metadataURIFlag
	}
	if compileFlag {
		cfg.CompileBeforeDeploy = true
	}

	if err := deploy(ctx, cfg); err != nil {
		return fmt.Errorf("deploy 失败：%w", err)
	}
	return nil
}

func deploy(ctx context.Context, cfg *config.Config) error {
	if err := cfg.ValidateDeploy(); err != nil {
		return err
	}

	if cfg.CompileBeforeDeploy {
		if err := deployer.DefaultCompiler().Compile(ctx, cfg.HardhatDir); err != nil {
			return err
		}
	}

	artifact, err := deployer.LoadArtifact(cfg.ArtifactPath)
	if err != nil {
		return err
	}

	keys, err := keysource.FromConfig(cfg.KeyConfig)
	if err != nil {
		return err
	}
	if keys == nil {
		return fmt.Errorf("部署需要签名私钥：请配置 privateKey / mnemonic / ssmPrivateKeyParam 之一")
	}
	priv, err := keys.Load(ctx)
	if err != nil {
		return err
	}

	client, err := ethclient.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		return fmt.Errorf("连接 RPC 失败: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("获取 chainId 失败: %w", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(priv, chainID)
	if err != nil {
		return err
	}

	factory := &deployer.ArtifactFactory{Artifact: artifact, Backend: client, Opts: opts}
	_, err = deployer.Run(ctx, factory, deployer.Params{
		ContractName: artifact.ContractName,
		MetadataURI:  cfg.MetadataUri,
	}, os.Stdout)
	return err
}
