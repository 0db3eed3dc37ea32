package deployer

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/wangdayong228/lw3punks-client/internal/contracts/lw3punks"
)

// Pending 为已提交、尚未确认的部署。
type Pending interface {
	Address() common.Address
	TxHash() common.Hash
	// Wait 阻塞直到部署上链确认，失败时返回错误。
	Wait(ctx context.Context) error
}

// Factory 以一个构造参数（metadata base URI）部署合约。
type Factory interface {
	Deploy(ctx context.Context, metadataURI string) (Pending, error)
}

type Params struct {
	// ContractName 仅用于输出，为空时使用 lw3punks.Name()。
	ContractName string
	MetadataURI  string
}

// DeploymentResult 只在输出后被丢弃，不做持久化。
type DeploymentResult struct {
	ContractAddress common.Address
	TxHash          common.Hash
}

// Run 部署合约、等待确认并把地址写到 out。
// 任何错误都直接向上返回，由调用方决定退出码；不做重试与回滚。
func Run(ctx context.Context, factory Factory, p Params, out io.Writer) (*DeploymentResult, error) {
	name := p.ContractName
	if name == "" {
		name = lw3punks.Name()
	}

	pending, err := factory.Deploy(ctx, p.MetadataURI)
	if err != nil {
		return nil, fmt.Errorf("部署 %s 失败: %w", name, err)
	}

	logrus.WithFields(logrus.Fields{
		"contract": name,
		"tx":       pending.TxHash().Hex(),
		"address":  pending.Address().Hex(),
	}).Info("deployment submitted, waiting for confirmation")

	if err := pending.Wait(ctx); err != nil {
		return nil, fmt.Errorf("等待 %s 部署确认失败: %w", name, err)
	}

	res := &DeploymentResult{
		ContractAddress: pending.Address(),
		TxHash:          pending.TxHash(),
	}
	fmt.Fprintf(out, "%s Address: %s\n", name, res.ContractAddress.Hex())
	return res, nil
}
