package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nft-rainbow/rainbow-goutils/utils/configutils"
	"github.com/shopspring/decimal"
)

const (
	DefaultChainID      uint64 = 80001
	DefaultNetworkName         = "Mumbai"
	DefaultMintPrice           = "0.01"
	DefaultMaxSupply           = 10
	DefaultPollInterval        = 5 * time.Second
	DefaultListen              = ":8080"
	DefaultMetadataURI         = "ipfs://Qmbygo38DWF1V8GttM1zy89KzyZTPU2FLUzQtiDvB7q6i5/"
	DefaultArtifactPath        = "artifacts/contracts/LW3Punks.sol/LW3Punks.json"
)

// KeyConfig 描述签名私钥的来源，三选一：privateKey / mnemonic / ssmPrivateKeyParam。
type KeyConfig struct {
	PrivateKey    string `yaml:"privateKey"`
	Mnemonic      string `yaml:"mnemonic"`
	MnemonicIndex int    `yaml:"mnemonicIndex"`

	// 从 AWS SSM Parameter Store 读取（SecureString，值为 0x 私钥）
	SsmPrivateKeyParam string `yaml:"ssmPrivateKeyParam"`
	AwsRegion          string `yaml:"awsRegion"`
}

// ChainConfig 为链与合约相关的通用配置。
type ChainConfig struct {
	RpcUrl          string `yaml:"rpcUrl"`
	ChainId         uint64 `yaml:"chainId"`
	NetworkName     string `yaml:"networkName"`
	ContractAddress string `yaml:"contractAddress"`
}

// MintConfig 为铸造页面相关配置。
type MintConfig struct {
	MintPrice    string        `yaml:"mintPrice"`
	MaxSupply    int           `yaml:"maxSupply"`
	PollInterval time.Duration `yaml:"pollInterval"`
	Listen       string        `yaml:"listen"`
}

// DeployConfig 为合约部署相关配置。
type DeployConfig struct {
	MetadataUri         string `yaml:"metadataUri"`
	ArtifactPath        string `yaml:"artifactPath"`
	HardhatDir          string `yaml:"hardhatDir"`
	CompileBeforeDeploy bool   `yaml:"compileBeforeDeploy"`
}

// Config 描述一份完整的 lw3punks-client 配置文件。
type Config struct {
	ChainConfig  `yaml:",inline" mapstructure:",squash"`
	KeyConfig    `yaml:",inline" mapstructure:",squash"`
	MintConfig   `yaml:",inline" mapstructure:",squash"`
	DeployConfig `yaml:",inline" mapstructure:",squash"`
}

// LoadConfigFromFile 从 YAML 文件加载配置，并补齐默认值。
func LoadConfigFromFile(path string) *Config {
	cfg := configutils.MustLoadByFile[Config](path)
	cfg.Normalize()
	return cfg
}

// Normalize 为未设置的字段填充默认值。
func (c *Config) Normalize() {
	if c.ChainId == 0 {
		c.ChainId = DefaultChainID
	}
	if strings.TrimSpace(c.NetworkName) == "" {
		c.NetworkName = DefaultNetworkName
	}
	if strings.TrimSpace(c.MintPrice) == "" {
		c.MintPrice = DefaultMintPrice
	}
	if c.MaxSupply <= 0 {
		c.MaxSupply = DefaultMaxSupply
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = DefaultListen
	}
	if strings.TrimSpace(c.MetadataUri) == "" {
		c.MetadataUri = DefaultMetadataURI
	}
	if strings.TrimSpace(c.ArtifactPath) == "" {
		c.ArtifactPath = DefaultArtifactPath
	}
}

// ValidateChain 校验所有链上操作都需要的字段。
func (c *Config) ValidateChain() error {
	if strings.TrimSpace(c.RpcUrl) == "" {
		return fmt.Errorf("rpcUrl 不可为空")
	}
	if c.ChainId == 0 {
		return fmt.Errorf("chainId 不可为 0")
	}
	return nil
}

// ValidateMint 校验铸造页面需要的字段。
func (c *Config) ValidateMint() error {
	if err := c.ValidateChain(); err != nil {
		return err
	}
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("contractAddress 不合法: %q", c.ContractAddress)
	}
	if _, err := c.MintPriceWei(); err != nil {
		return err
	}
	return nil
}

// ValidateDeploy 校验部署需要的字段。
func (c *Config) ValidateDeploy() error {
	if err := c.ValidateChain(); err != nil {
		return err
	}
	if strings.TrimSpace(c.ArtifactPath) == "" {
		return fmt.Errorf("artifactPath 不可为空")
	}
	if c.CompileBeforeDeploy && strings.TrimSpace(c.HardhatDir) == "" {
		return fmt.Errorf("compileBeforeDeploy=true 时 hardhatDir 不可为空")
	}
	return nil
}

// Contract 返回配置中的合约地址。调用前应先经过 ValidateMint。
func (c *Config) Contract() common.Address {
	return common.HexToAddress(c.ContractAddress)
}

// MintPriceWei 将十进制的 mintPrice（单位为链原生币）转换为 wei。
func (c *Config) MintPriceWei() (*big.Int, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(c.MintPrice))
	if err != nil {
		return nil, fmt.Errorf("mintPrice 不合法: %q: %w", c.MintPrice, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("mintPrice 不可为负数: %q", c.MintPrice)
	}
	wei := price.Shift(18)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, fmt.Errorf("mintPrice 精度超过 18 位小数: %q", c.MintPrice)
	}
	return wei.BigInt(), nil
}
