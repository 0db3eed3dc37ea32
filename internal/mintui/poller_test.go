package mintui

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoller_RefreshesUntilStopped(t *testing.T) {
	s, _, h, _ := newTestSession(80001)
	h.reader.set(5, nil)

	p := NewPoller(s, 10*time.Millisecond)
	require.NoError(t, p.Start(context.Background()))
	require.Error(t, p.Start(context.Background()), "重复启动应报错")

	require.Eventually(t, func() bool { return s.Snapshot().MintedCount == "5" }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return h.reader.Calls() >= 3 }, time.Second, 5*time.Millisecond)

	p.Stop()
	calls := h.reader.Calls()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, calls, h.reader.Calls(), "Stop 后不应再轮询")

	// Stop 幂等
	p.Stop()
}

func TestPoller_FailureKeepsPolling(t *testing.T) {
	s, _, h, _ := newTestSession(80001)
	h.reader.set(-1, errBoom)

	p := NewPoller(s, 10*time.Millisecond)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	require.Eventually(t, func() bool { return h.reader.Calls() >= 2 }, time.Second, 5*time.Millisecond)
	require.Equal(t, "0", s.Snapshot().MintedCount)

	h.reader.set(2, nil)
	require.Eventually(t, func() bool { return s.Snapshot().MintedCount == "2" }, time.Second, 5*time.Millisecond)
}

func TestPoller_StopsWithContext(t *testing.T) {
	r := &fakeReader{n: big.NewInt(1)}
	s := NewSession(&fakeConnector{handle: &fakeHandle{chainID: 80001, reader: r}}, Options{ChainID: 80001})

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(s, time.Hour)
	require.NoError(t, p.Start(ctx))
	require.Eventually(t, func() bool { return r.Calls() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	p.Stop()
}

func TestPoller_InvalidInterval(t *testing.T) {
	s, _, _, _ := newTestSession(80001)
	require.Error(t, NewPoller(s, 0).Start(context.Background()))
}
