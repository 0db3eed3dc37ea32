package nft

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"
	"github.com/pkg/errors"

	"github.com/wangdayong228/lw3punks-client/internal/contracts/lw3punks"
)

// W3Reader 通过 w3 的 eth_call 读取合约状态。
type W3Reader struct {
	client   *w3.Client
	contract common.Address
}

var _ SupplyReader = (*W3Reader)(nil)

func NewW3Reader(client *w3.Client, contract common.Address) *W3Reader {
	return &W3Reader{client: client, contract: contract}
}

func (r *W3Reader) TokenIds(ctx context.Context) (*big.Int, error) {
	var n *big.Int
	if err := r.client.CallCtx(ctx, eth.CallFunc(r.contract, lw3punks.FuncTokenIds).Returns(&n)); err != nil {
		return nil, errors.Wrap(err, "call tokenIds")
	}
	if n == nil {
		return nil, errors.New("call tokenIds: empty result")
	}
	return n, nil
}

// MaxTokenIds 读取合约的最大供应量。
func (r *W3Reader) MaxTokenIds(ctx context.Context) (*big.Int, error) {
	var n *big.Int
	if err := r.client.CallCtx(ctx, eth.CallFunc(r.contract, lw3punks.FuncMaxTokenIds).Returns(&n)); err != nil {
		return nil, errors.Wrap(err, "call maxTokenIds")
	}
	if n == nil {
		return nil, errors.New("call maxTokenIds: empty result")
	}
	return n, nil
}
