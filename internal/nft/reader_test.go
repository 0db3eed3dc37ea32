package nft

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/lmittmann/w3"
	"github.com/stretchr/testify/require"

	"github.com/wangdayong228/lw3punks-client/internal/contracts/lw3punks"
)

// fakeEth 以进程内 JSON-RPC 服务的形式模拟 eth 命名空间。
type fakeEth struct {
	tokenIds *big.Int
	maxIds   *big.Int
	callErr  error
	lastTo   string
}

func (f *fakeEth) ChainId() hexutil.Uint64 {
	return hexutil.Uint64(80001)
}

func (f *fakeEth) Call(msg map[string]any, block *string, overrides *map[string]any) (hexutil.Bytes, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	if to, ok := msg["to"].(string); ok {
		f.lastTo = to
	}
	if strings.HasPrefix(callInput(msg), hexutil.Encode(lw3punks.FuncMaxTokenIds.Selector[:])) {
		return lw3punks.ABI().Methods["maxTokenIds"].Outputs.Pack(f.maxIds)
	}
	return lw3punks.ABI().Methods[lw3punks.MethodTokenIds].Outputs.Pack(f.tokenIds)
}

func callInput(msg map[string]any) string {
	for _, k := range []string{"input", "data"} {
		if v, ok := msg[k].(string); ok {
			return v
		}
	}
	return ""
}

func newInProcW3(t *testing.T, svc *fakeEth) *w3.Client {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	t.Cleanup(server.Stop)

	client := w3.NewClient(rpc.DialInProc(server))
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestW3Reader_TokenIds(t *testing.T) {
	svc := &fakeEth{tokenIds: big.NewInt(7)}
	addr := common.HexToAddress("0x00000000000000000000000000000000000000a1")

	r := NewW3Reader(newInProcW3(t, svc), addr)
	got, err := r.TokenIds(context.Background())
	require.NoError(t, err)
	require.Equal(t, "7", got.String())
	require.True(t, common.HexToAddress(svc.lastTo) == addr, "eth_call to=%s", svc.lastTo)
}

func TestW3Reader_TokenIds_Error(t *testing.T) {
	svc := &fakeEth{callErr: errors.New("execution reverted")}
	r := NewW3Reader(newInProcW3(t, svc), common.HexToAddress("0x00000000000000000000000000000000000000a1"))

	_, err := r.TokenIds(context.Background())
	require.ErrorContains(t, err, "call tokenIds")
}

func TestW3Reader_MaxTokenIds(t *testing.T) {
	svc := &fakeEth{tokenIds: big.NewInt(2), maxIds: big.NewInt(10)}
	r := NewW3Reader(newInProcW3(t, svc), common.HexToAddress("0x00000000000000000000000000000000000000a1"))

	got, err := r.MaxTokenIds(context.Background())
	require.NoError(t, err)
	require.Equal(t, "10", got.String())

	n, err := r.TokenIds(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2", n.String())
}
