package wallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/wangdayong228/lw3punks-client/internal/keysource"
	"github.com/wangdayong228/lw3punks-client/internal/nft"
	"github.com/wangdayong228/lw3punks-client/internal/utils/cryptoutil"
)

// ErrNoSigner 表示当前连接没有配置签名私钥，只能只读。
var ErrNoSigner = errors.New("no signer configured")

// Handle 是一次握手得到的钱包连接，会话内复用。
// Reader / Signer 每次调用都重新构造视图，不会重新握手。
type Handle interface {
	ChainID(ctx context.Context) (uint64, error)
	Reader(contract common.Address) nft.Reader
	Signer(ctx context.Context, contract common.Address) (nft.Writer, error)
	Close() error
}

// Connector 负责与钱包/节点握手。
type Connector interface {
	Connect(ctx context.Context) (Handle, error)
}

// DialFunc 建立底层 JSON-RPC 连接，测试中可替换为进程内连接。
type DialFunc func(ctx context.Context, rawurl string) (*rpc.Client, error)

// RPCConnector 通过 JSON-RPC 节点加本地私钥充当钱包。
type RPCConnector struct {
	RpcUrl string
	Keys   keysource.Source
	Dial   DialFunc
}

func NewRPCConnector(rpcURL string, keys keysource.Source) *RPCConnector {
	return &RPCConnector{RpcUrl: rpcURL, Keys: keys, Dial: rpc.DialContext}
}

func (c *RPCConnector) Connect(ctx context.Context) (Handle, error) {
	if strings.TrimSpace(c.RpcUrl) == "" {
		return nil, errors.New("rpc url is empty")
	}

	var key *ecdsa.PrivateKey
	if c.Keys != nil {
		k, err := c.Keys.Load(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "load signer key from %s", c.Keys.Describe())
		}
		key = k
	}

	dial := c.Dial
	if dial == nil {
		dial = rpc.DialContext
	}
	rc, err := dial(ctx, c.RpcUrl)
	if err != nil {
		return nil, errors.Wrap(err, "dial rpc")
	}

	h := &rpcHandle{
		rpc: rc,
		eth: ethclient.NewClient(rc),
		w3:  w3.NewClient(rc),
		key: key,
	}

	entry := logrus.WithField("rpc", c.RpcUrl)
	if key != nil {
		entry = entry.WithField("account", cryptoutil.AddressOf(key).Hex())
	}
	entry.Info("wallet connected")
	return h, nil
}

type rpcHandle struct {
	rpc *rpc.Client
	eth *ethclient.Client
	w3  *w3.Client
	key *ecdsa.PrivateKey
}

func (h *rpcHandle) ChainID(ctx context.Context) (uint64, error) {
	var chainID uint64
	if err := h.w3.CallCtx(ctx, eth.ChainID().Returns(&chainID)); err != nil {
		return 0, errors.Wrap(err, "get chain id")
	}
	return chainID, nil
}

func (h *rpcHandle) Reader(contract common.Address) nft.Reader {
	return nft.NewW3Reader(h.w3, contract)
}

func (h *rpcHandle) Signer(ctx context.Context, contract common.Address) (nft.Writer, error) {
	if h.key == nil {
		return nil, ErrNoSigner
	}
	chainID, err := h.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(h.key, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, errors.Wrap(err, "create transactor")
	}
	return nft.NewBoundWriter(h.eth, contract, opts), nil
}

func (h *rpcHandle) Close() error {
	h.rpc.Close()
	return nil
}
