// Package wallettest 提供 wallet.Connector 的内存实现，供其他包的测试使用。
package wallettest

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/wangdayong228/lw3punks-client/internal/nft"
	"github.com/wangdayong228/lw3punks-client/internal/wallet"
)

// Chain 模拟一条链上的 LW3Punks 合约：mint 立即确认并使 tokenIds 加一。
type Chain struct {
	mu       sync.Mutex
	ChainID  uint64
	TokenIds int64
	// MaxTokenIds 为 0 时视为合约未实现 maxTokenIds()
	MaxTokenIds int64
	MintErr     error
	ReadErr     error
	Connects    int
	Reads       int
	Paid        []*big.Int
}

func (c *Chain) Connect(ctx context.Context) (wallet.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Connects++
	return &handle{chain: c}, nil
}

// SetChainID 切换钱包所在网络。
func (c *Chain) SetChainID(id uint64) {
	c.mu.Lock()
	c.ChainID = id
	c.mu.Unlock()
}

// SetTokenIds 直接修改链上已铸造数量，模拟其他账户的 mint。
func (c *Chain) SetTokenIds(n int64) {
	c.mu.Lock()
	c.TokenIds = n
	c.mu.Unlock()
}

// ReadCount 返回 tokenIds 被读取的次数。
func (c *Chain) ReadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Reads
}

// Minted 返回当前 tokenIds。
func (c *Chain) Minted() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.TokenIds
}

type handle struct {
	chain *Chain
}

func (h *handle) ChainID(ctx context.Context) (uint64, error) {
	h.chain.mu.Lock()
	defer h.chain.mu.Unlock()
	return h.chain.ChainID, nil
}

func (h *handle) Reader(contract common.Address) nft.Reader { return h }

func (h *handle) Signer(ctx context.Context, contract common.Address) (nft.Writer, error) {
	return h, nil
}

func (h *handle) Close() error { return nil }

func (h *handle) TokenIds(ctx context.Context) (*big.Int, error) {
	h.chain.mu.Lock()
	defer h.chain.mu.Unlock()
	h.chain.Reads++
	if h.chain.ReadErr != nil {
		return nil, h.chain.ReadErr
	}
	return big.NewInt(h.chain.TokenIds), nil
}

func (h *handle) MaxTokenIds(ctx context.Context) (*big.Int, error) {
	h.chain.mu.Lock()
	defer h.chain.mu.Unlock()
	if h.chain.MaxTokenIds == 0 {
		return nil, errors.New("maxTokenIds() not implemented")
	}
	return big.NewInt(h.chain.MaxTokenIds), nil
}

func (h *handle) Mint(ctx context.Context, value *big.Int) (nft.PendingTx, error) {
	h.chain.mu.Lock()
	defer h.chain.mu.Unlock()
	if h.chain.MintErr != nil {
		return nil, h.chain.MintErr
	}
	h.chain.Paid = append(h.chain.Paid, new(big.Int).Set(value))
	h.chain.TokenIds++
	return confirmed{hash: common.BigToHash(big.NewInt(h.chain.TokenIds))}, nil
}

type confirmed struct {
	hash common.Hash
}

func (c confirmed) Hash() common.Hash { return c.hash }

func (c confirmed) Wait(ctx context.Context) (*types.Receipt, error) {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: c.hash, BlockNumber: big.NewInt(1)}, nil
}
