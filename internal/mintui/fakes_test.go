package mintui

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/wangdayong228/lw3punks-client/internal/nft"
	"github.com/wangdayong228/lw3punks-client/internal/wallet"
)

type fakeConnector struct {
	handle *fakeHandle
	err    error
	calls  atomic.Int32
}

func (c *fakeConnector) Connect(ctx context.Context) (wallet.Handle, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.handle, nil
}

type fakeHandle struct {
	mu        sync.Mutex
	chainID   uint64
	reader    *fakeReader
	writer    nft.Writer
	signerErr error
	closed    bool
}

func (h *fakeHandle) setChainID(id uint64) {
	h.mu.Lock()
	h.chainID = id
	h.mu.Unlock()
}

func (h *fakeHandle) ChainID(ctx context.Context) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chainID, nil
}

func (h *fakeHandle) Reader(contract common.Address) nft.Reader {
	return h.reader
}

func (h *fakeHandle) Signer(ctx context.Context, contract common.Address) (nft.Writer, error) {
	if h.signerErr != nil {
		return nil, h.signerErr
	}
	return h.writer, nil
}

func (h *fakeHandle) Close() error {
	h.closed = true
	return nil
}

type fakeReader struct {
	mu    sync.Mutex
	n     *big.Int
	max   *big.Int
	err   error
	calls int
}

func (r *fakeReader) MaxTokenIds(ctx context.Context) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max == nil {
		return nil, errBoom
	}
	return new(big.Int).Set(r.max), nil
}

func (r *fakeReader) set(n int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n >= 0 {
		r.n = big.NewInt(n)
	}
	r.err = err
}

func (r *fakeReader) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *fakeReader) TokenIds(ctx context.Context) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return new(big.Int).Set(r.n), nil
}

// fakeWriter 的交易在 release 关闭前一直处于待确认状态。
type fakeWriter struct {
	mintErr   error
	waitErr   error
	release   chan struct{}
	submitted chan struct{}
	value     *big.Int
	sent      atomic.Int32
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{release: make(chan struct{}), submitted: make(chan struct{}, 8)}
}

func (w *fakeWriter) Mint(ctx context.Context, value *big.Int) (nft.PendingTx, error) {
	if w.mintErr != nil {
		return nil, w.mintErr
	}
	w.value = value
	w.sent.Add(1)
	w.submitted <- struct{}{}
	return &fakePending{w: w}, nil
}

type fakePending struct {
	w *fakeWriter
}

func (p *fakePending) Hash() common.Hash {
	return common.HexToHash("0x01")
}

func (p *fakePending) Wait(ctx context.Context) (*types.Receipt, error) {
	select {
	case <-p.w.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if p.w.waitErr != nil {
		return nil, p.w.waitErr
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}, nil
}

var errBoom = errors.New("boom")
