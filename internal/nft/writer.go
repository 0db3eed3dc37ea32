package nft

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/wangdayong228/lw3punks-client/internal/contracts/lw3punks"
)

// Backend 为写调用所需的链后端，*ethclient.Client 即满足。
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// BoundWriter 基于 go-ethereum BoundContract 发送交易。
type BoundWriter struct {
	backend  Backend
	contract *bind.BoundContract
	opts     bind.TransactOpts
}

// NewBoundWriter 创建写视图。opts 中的 From/Signer 决定签名账户，Value/Context 每次调用时覆盖。
func NewBoundWriter(backend Backend, address common.Address, opts *bind.TransactOpts) *BoundWriter {
	contract := bind.NewBoundContract(address, lw3punks.ABI(), backend, backend, backend)
	return &BoundWriter{
		backend:  backend,
		contract: contract,
		opts:     *opts,
	}
}

func (w *BoundWriter) Mint(ctx context.Context, value *big.Int) (PendingTx, error) {
	opts := w.opts
	opts.Context = ctx
	opts.Value = value

	tx, err := w.contract.Transact(&opts, lw3punks.MethodMint)
	if err != nil {
		return nil, errors.Wrap(err, "send mint tx")
	}
	return &minedWaiter{backend: w.backend, tx: tx}, nil
}

type minedWaiter struct {
	backend bind.DeployBackend
	tx      *types.Transaction
}

func (p *minedWaiter) Hash() common.Hash {
	return p.tx.Hash()
}

func (p *minedWaiter) Wait(ctx context.Context) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return nil, errors.Wrapf(err, "wait tx %s", p.tx.Hash().Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, errors.Wrapf(ErrReverted, "tx %s", p.tx.Hash().Hex())
	}
	return receipt, nil
}
