package keysource

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/openweb3/go-sdk-common/privatekeyhelper"
	"github.com/tyler-smith/go-bip39"

	"github.com/wangdayong228/lw3punks-client/internal/config"
	"github.com/wangdayong228/lw3punks-client/internal/utils/cryptoutil"
)

// Source 提供签名所需的私钥。
type Source interface {
	Load(ctx context.Context) (*ecdsa.PrivateKey, error)
	// Describe 返回不含敏感信息的来源描述，用于日志。
	Describe() string
}

// FromConfig 根据配置选择私钥来源，三种来源互斥。
// 三者都为空时返回 (nil, nil)，表示只读会话。
func FromConfig(cfg config.KeyConfig) (Source, error) {
	set := 0
	for _, v := range []string{cfg.PrivateKey, cfg.Mnemonic, cfg.SsmPrivateKeyParam} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("privateKey / mnemonic / ssmPrivateKeyParam 只能配置一个")
	}

	switch {
	case strings.TrimSpace(cfg.PrivateKey) != "":
		return HexSource{Hex: cfg.PrivateKey}, nil
	case strings.TrimSpace(cfg.Mnemonic) != "":
		return MnemonicSource{Mnemonic: cfg.Mnemonic, Index: cfg.MnemonicIndex}, nil
	case strings.TrimSpace(cfg.SsmPrivateKeyParam) != "":
		awsCfg := aws.Config{}
		if cfg.AwsRegion != "" {
			awsCfg.Region = aws.String(cfg.AwsRegion)
		}
		sess, err := session.NewSession(&awsCfg)
		if err != nil {
			return nil, fmt.Errorf("创建 AWS Session 失败: %w", err)
		}
		return SSMSource{Client: ssm.New(sess), Param: cfg.SsmPrivateKeyParam}, nil
	default:
		return nil, nil
	}
}

// HexSource 直接使用配置中的十六进制私钥。
type HexSource struct {
	Hex string
}

func (s HexSource) Load(ctx context.Context) (*ecdsa.PrivateKey, error) {
	return cryptoutil.ParsePrivateKeyHex(s.Hex)
}

func (s HexSource) Describe() string { return "privateKey" }

// MnemonicSource 按 m/44'/60'/0'/0/<index> 从助记词派生私钥。
type MnemonicSource struct {
	Mnemonic string
	Index    int
}

func (s MnemonicSource) Load(ctx context.Context) (*ecdsa.PrivateKey, error) {
	mnemonic := strings.Join(strings.Fields(s.Mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("mnemonic 不合法")
	}
	if s.Index < 0 {
		return nil, fmt.Errorf("mnemonicIndex 不可为负数: %d", s.Index)
	}
	key, err := privatekeyhelper.NewFromMnemonic(mnemonic, s.Index, nil)
	if err != nil {
		return nil, fmt.Errorf("根据 mnemonic 派生私钥失败: %w", err)
	}
	return key, nil
}

func (s MnemonicSource) Describe() string {
	return fmt.Sprintf("mnemonic[%d]", s.Index)
}

// SSMSource 从 AWS SSM Parameter Store 读取加密保存的私钥。
type SSMSource struct {
	Client ssmiface.SSMAPI
	Param  string
}

func (s SSMSource) Load(ctx context.Context) (*ecdsa.PrivateKey, error) {
	out, err := s.Client.GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.Param),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("读取 SSM 参数 %s 失败: %w", s.Param, err)
	}
	if out.Parameter == nil || aws.StringValue(out.Parameter.Value) == "" {
		return nil, fmt.Errorf("SSM 参数 %s 为空", s.Param)
	}
	return cryptoutil.ParsePrivateKeyHex(aws.StringValue(out.Parameter.Value))
}

func (s SSMSource) Describe() string {
	return "ssm:" + s.Param
}
