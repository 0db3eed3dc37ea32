// Package nft 封装对 LW3Punks 合约的只读调用与写调用。
package nft

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// ErrReverted 表示交易已上链但执行失败。
var ErrReverted = errors.New("transaction reverted")

// Reader 为合约的只读视图（provider）。
type Reader interface {
	TokenIds(ctx context.Context) (*big.Int, error)
}

// SupplyReader 可选，读取合约的最大供应量（maxTokenIds）。
type SupplyReader interface {
	MaxTokenIds(ctx context.Context) (*big.Int, error)
}

// PendingTx 为已提交、尚未确认的交易。
type PendingTx interface {
	Hash() common.Hash
	Wait(ctx context.Context) (*types.Receipt, error)
}

// Writer 为合约的可签名视图（signer）。
type Writer interface {
	// Mint 提交一笔携带 value 的 mint() 交易，不等待确认。
	Mint(ctx context.Context, value *big.Int) (PendingTx, error)
}
