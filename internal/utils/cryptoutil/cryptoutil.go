package cryptoutil

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EcdsaPrivToWeb3Hex 返回 0x 前缀、补足 64 位的私钥十六进制字符串。
func EcdsaPrivToWeb3Hex(priv *ecdsa.PrivateKey) string {
	return fmt.Sprintf("0x%064x", priv.D)
}

// ParsePrivateKeyHex 解析 0x 前缀可选的 secp256k1 私钥。
func ParsePrivateKeyHex(v string) (*ecdsa.PrivateKey, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "0x")
	if v == "" {
		return nil, fmt.Errorf("私钥为空")
	}
	key, err := crypto.HexToECDSA(v)
	if err != nil {
		return nil, fmt.Errorf("解析私钥失败: %w", err)
	}
	return key, nil
}

// AddressOf 返回私钥对应的账户地址。
func AddressOf(priv *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(priv.PublicKey)
}
