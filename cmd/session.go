package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wangdayong228/lw3punks-client/internal/config"
	"github.com/wangdayong228/lw3punks-client/internal/keysource"
	"github.com/wangdayong228/lw3punks-client/internal/mintui"
	"github.com/wangdayong228/lw3punks-client/internal/wallet"
)

// newSession 按配置构造铸造会话；notice 可为空。
func newSession(cfg *config.Config, notice func(mintui.Notice)) (*mintui.Session, error) {
	if err := cfg.ValidateMint(); err != nil {
		return nil, err
	}
	price, err := cfg.MintPriceWei()
	if err != nil {
		return nil, err
	}

	keys, err := keysource.FromConfig(cfg.KeyConfig)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		logrus.Warn("no signer key configured, session is read-only")
	} else {
		logrus.WithField("keySource", keys.Describe()).Debug("signer key source selected")
	}

	connector := wallet.NewRPCConnector(cfg.RpcUrl, keys)
	return mintui.NewSession(connector, mintui.Options{
		Contract:    cfg.Contract(),
		ChainID:     cfg.ChainId,
		NetworkName: cfg.NetworkName,
		MintPrice:   price,
		OnNotice:    notice,
	}), nil
}

func printNotice(n mintui.Notice) {
	fmt.Printf("[%s] %s\n", n.Level, n.Message)
}
