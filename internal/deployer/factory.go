package deployer

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend 为部署所需的链后端，*ethclient.Client 即满足。
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// ArtifactFactory 使用 hardhat 编译产物通过 go-ethereum bind 部署合约。
type ArtifactFactory struct {
	Artifact *Artifact
	Backend  Backend
	Opts     *bind.TransactOpts
}

func (f *ArtifactFactory) Deploy(ctx context.Context, metadataURI string) (Pending, error) {
	if f.Artifact == nil {
		return nil, fmt.Errorf("合约产物为空")
	}
	opts := *f.Opts
	opts.Context = ctx

	addr, tx, _, err := bind.DeployContract(&opts, f.Artifact.ABI, f.Artifact.Bytecode, f.Backend, metadataURI)
	if err != nil {
		return nil, err
	}
	return &deployedWaiter{backend: f.Backend, tx: tx, address: addr}, nil
}

type deployedWaiter struct {
	backend bind.DeployBackend
	tx      *types.Transaction
	address common.Address
}

func (p *deployedWaiter) Address() common.Address { return p.address }

func (p *deployedWaiter) TxHash() common.Hash { return p.tx.Hash() }

func (p *deployedWaiter) Wait(ctx context.Context) error {
	addr, err := bind.WaitDeployed(ctx, p.backend, p.tx)
	if err != nil {
		return err
	}
	if addr != p.address {
		return fmt.Errorf("部署地址不一致: predicted=%s receipt=%s", p.address.Hex(), addr.Hex())
	}
	return nil
}
