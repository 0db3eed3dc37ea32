package mintui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/wangdayong228/lw3punks-client/internal/constants/enums"
	"github.com/wangdayong228/lw3punks-client/internal/nft"
	"github.com/wangdayong228/lw3punks-client/internal/wallet"
)

const MintSuccessMessage = "You successfully minted a LW3Punk!"

var (
	// ErrWrongNetwork 表示钱包当前所在网络与要求的网络不一致。
	ErrWrongNetwork = errors.New("wrong network")
	// ErrMintInFlight 表示已有一笔 mint 交易尚未确认。
	ErrMintInFlight = errors.New("a mint transaction is already in flight")
)

// Options 为 Session 的固定配置。
type Options struct {
	Contract    common.Address
	ChainID     uint64
	NetworkName string
	// MintPrice 为每次 mint 附带的金额（wei）。
	MintPrice *big.Int
	// OnNotice 可选，每产生一条提示时同步回调（例如 CLI 直接打印）。
	OnNotice func(Notice)
}

// Session 持有一个页面会话的全部状态与钱包连接。
type Session struct {
	connector wallet.Connector
	opts      Options

	// handleMu 只保护 handle 的惰性创建，避免握手期间阻塞状态读取。
	handleMu sync.Mutex
	handle   wallet.Handle

	mu        sync.RWMutex
	state     State
	notices   []Notice
	maxSupply *big.Int

	minting atomic.Bool

	// life 在 Close 时取消；已提交交易的等待只受它约束，不受调用方 ctx 影响
	life    context.Context
	stop    context.CancelFunc
	waiters sync.WaitGroup
}

func NewSession(connector wallet.Connector, opts Options) *Session {
	if opts.NetworkName == "" {
		opts.NetworkName = "Mumbai"
	}
	if opts.MintPrice == nil {
		opts.MintPrice = new(big.Int)
	}
	life, stop := context.WithCancel(context.Background())
	return &Session{
		connector: connector,
		opts:      opts,
		state:     State{MintedCount: "0"},
		life:      life,
		stop:      stop,
	}
}

// Snapshot 返回当前状态的副本。
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// DrainNotices 取出并清空待展示的提示。
func (s *Session) DrainNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

// Connect 完成钱包握手与网络校验，已连接时不做任何事。
func (s *Session) Connect(ctx context.Context) error {
	if s.Snapshot().Connected {
		return nil
	}
	if _, err := s.provider(ctx); err != nil {
		logrus.WithError(err).Error("connect wallet failed")
		return err
	}

	s.mu.Lock()
	s.state.Connected = true
	s.mu.Unlock()
	logrus.WithField("chainId", s.opts.ChainID).Info("wallet connected to required network")
	return nil
}

// RefreshMinted 读取合约 tokenIds 并写入 MintedCount。失败时保留旧值。
func (s *Session) RefreshMinted(ctx context.Context) error {
	reader, err := s.provider(ctx)
	if err != nil {
		logrus.WithError(err).Warn("refresh minted count failed")
		return err
	}
	n, err := reader.TokenIds(ctx)
	if err != nil {
		logrus.WithError(err).Warn("refresh minted count failed")
		return err
	}

	s.mu.Lock()
	s.state.MintedCount = n.String()
	s.mu.Unlock()
	logrus.WithField("tokenIds", n.String()).Debug("minted count refreshed")
	return nil
}

// RefreshMaxSupply 读取合约的最大供应量；钱包视图不支持时不做任何事。
func (s *Session) RefreshMaxSupply(ctx context.Context) error {
	reader, err := s.provider(ctx)
	if err != nil {
		return err
	}
	sr, ok := reader.(nft.SupplyReader)
	if !ok {
		return nil
	}
	n, err := sr.MaxTokenIds(ctx)
	if err != nil {
		logrus.WithError(err).Warn("read max supply failed")
		return err
	}
	if n.Sign() <= 0 {
		return nil
	}

	s.mu.Lock()
	s.maxSupply = new(big.Int).Set(n)
	s.mu.Unlock()
	return nil
}

// MaxSupply 返回从合约读到的最大供应量，未读到时 ok=false。
func (s *Session) MaxSupply() (n *big.Int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.maxSupply == nil {
		return nil, false
	}
	return new(big.Int).Set(s.maxSupply), true
}

// PublicMint 提交一笔 mint 交易并等待确认。
// 同一会话同时最多一笔在途交易。交易提交后无法撤销：ctx 结束只会让调用方提前返回，
// guard 与 loading 会一直保持到收到回执或会话 Close。
func (s *Session) PublicMint(ctx context.Context) error {
	if !s.minting.CompareAndSwap(false, true) {
		return ErrMintInFlight
	}

	tx, err := s.submitMint(ctx)
	if err != nil {
		s.minting.Store(false)
		logrus.WithError(err).Error("public mint failed")
		return err
	}

	s.setLoading(true)
	done := make(chan error, 1)
	s.waiters.Add(1)
	go func() {
		defer s.waiters.Done()
		err := s.awaitMint(tx)
		if err != nil {
			logrus.WithError(err).WithField("tx", tx.Hash().Hex()).Error("public mint failed")
		}
		s.setLoading(false)
		s.minting.Store(false)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logrus.WithField("tx", tx.Hash().Hex()).Warn("caller stopped waiting, mint tx stays in flight")
		return ctx.Err()
	}
}

func (s *Session) submitMint(ctx context.Context) (nft.PendingTx, error) {
	writer, err := s.signer(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := writer.Mint(ctx, s.opts.MintPrice)
	if err != nil {
		return nil, err
	}
	logrus.WithField("tx", tx.Hash().Hex()).Info("mint tx submitted, waiting for confirmation")
	return tx, nil
}

func (s *Session) awaitMint(tx nft.PendingTx) error {
	receipt, err := tx.Wait(s.life)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"tx":    tx.Hash().Hex(),
		"block": receipt.BlockNumber,
	}).Info("mint tx confirmed")
	s.notify(Notice{Level: enums.NoticeLevelSuccess, Message: MintSuccessMessage})
	return nil
}

// Close 释放会话持有的钱包连接。
func (s *Session) Close() error {
	s.stop()
	s.waiters.Wait()

	s.handleMu.Lock()
	defer s.handleMu.Unlock()
	if s.handle == nil {
		return nil
	}
	err := s.handle.Close()
	s.handle = nil
	return err
}

func (s *Session) provider(ctx context.Context) (nft.Reader, error) {
	h, err := s.checkedHandle(ctx)
	if err != nil {
		return nil, err
	}
	return h.Reader(s.opts.Contract), nil
}

func (s *Session) signer(ctx context.Context) (nft.Writer, error) {
	h, err := s.checkedHandle(ctx)
	if err != nil {
		return nil, err
	}
	return h.Signer(ctx, s.opts.Contract)
}

// checkedHandle 复用已建立的连接，并在每次调用时重新校验网络。
func (s *Session) checkedHandle(ctx context.Context) (wallet.Handle, error) {
	h, err := s.ensureHandle(ctx)
	if err != nil {
		return nil, err
	}

	chainID, err := h.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	if chainID != s.opts.ChainID {
		s.notify(Notice{
			Level:   enums.NoticeLevelAlert,
			Message: fmt.Sprintf("Change the network to %s", s.opts.NetworkName),
		})
		return nil, fmt.Errorf("Change network to %s (chainId=%d, want %d): %w", s.opts.NetworkName, chainID, s.opts.ChainID, ErrWrongNetwork)
	}
	return h, nil
}

func (s *Session) ensureHandle(ctx context.Context) (wallet.Handle, error) {
	s.handleMu.Lock()
	defer s.handleMu.Unlock()

	if s.handle != nil {
		return s.handle, nil
	}
	h, err := s.connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet handshake: %w", err)
	}
	s.handle = h
	return h, nil
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.state.Loading = v
	s.mu.Unlock()
}

func (s *Session) notify(n Notice) {
	s.mu.Lock()
	// 同一条提示连续出现时只保留一条，避免轮询期间堆积
	if k := len(s.notices); k > 0 && s.notices[k-1] == n {
		s.mu.Unlock()
		return
	}
	s.notices = append(s.notices, n)
	s.mu.Unlock()

	if s.opts.OnNotice != nil {
		s.opts.OnNotice(n)
	}
}
