package mintui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Refresher 为轮询的目标，Session 即满足。
type Refresher interface {
	RefreshMinted(ctx context.Context) error
}

// Poller 在页面存活期间周期性刷新只读状态。
// Start 对应挂载，Stop 对应卸载；Stop 会等待轮询协程退出。
type Poller struct {
	target   Refresher
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(target Refresher, interval time.Duration) *Poller {
	return &Poller{target: target, interval: interval}
}

// Start 立即刷新一次，随后每 interval 刷新一次，直到 Stop 或 ctx 结束。
func (p *Poller) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return errors.New("poll interval must be > 0")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return errors.New("poller already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.loop(ctx, p.done)
	return nil
}

// Stop 停止轮询并等待协程退出，未启动时直接返回。
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		// 失败已由 target 记录日志，这里只保证不中断轮询
		if err := p.target.RefreshMinted(ctx); err != nil {
			logrus.WithError(err).Debug("poll tick failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
