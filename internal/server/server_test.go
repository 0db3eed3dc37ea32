package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/wangdayong228/lw3punks-client/internal/constants/enums"
	"github.com/wangdayong228/lw3punks-client/internal/mintui"
	"github.com/wangdayong228/lw3punks-client/internal/wallet/wallettest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var mintPriceWei = big.NewInt(10_000_000_000_000_000)

func newTestServer(chainID uint64) (*Server, *mintui.Session, *wallettest.Chain) {
	chain := &wallettest.Chain{ChainID: chainID}
	session := mintui.NewSession(chain, mintui.Options{
		Contract:  common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		ChainID:   80001,
		MintPrice: mintPriceWei,
	})
	return New(session, Options{MaxSupply: 10, PollInterval: 5 * time.Second}), session, chain
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func TestIndex_NotConnected(t *testing.T) {
	s, _, _ := newTestServer(80001)

	w := do(t, s.Handler(), http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "0/10 have been minted!")
	require.Contains(t, body, "Connect your wallet!")
	require.Contains(t, body, `action="/connect"`)
}

func TestAPI_ConnectAndMint(t *testing.T) {
	s, session, chain := newTestServer(80001)
	h := s.Handler()

	var st StateResponse
	w := do(t, h, http.MethodGet, "/api/state")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Equal(t, enums.ButtonConnect, st.Button)
	require.Equal(t, "0", st.MintedCount)

	w = do(t, h, http.MethodPost, "/api/connect")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.True(t, st.Connected)
	require.Equal(t, enums.ButtonMint, st.Button)

	w = do(t, h, http.MethodPost, "/api/mint")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.EqualValues(t, 1, chain.Minted())
	require.False(t, session.Snapshot().Loading)

	require.NoError(t, session.RefreshMinted(context.Background()))
	w = do(t, h, http.MethodGet, "/api/state?drain=true")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Equal(t, "1", st.MintedCount)
	require.Len(t, st.Notices, 1)
	require.Equal(t, mintui.MintSuccessMessage, st.Notices[0].Message)
}

func TestAPI_WrongNetwork(t *testing.T) {
	s, _, _ := newTestServer(1)
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/api/connect")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var eb errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eb))
	require.Equal(t, CodeWrongNetwork, eb.Code)
	require.Contains(t, eb.Message, "Change network to Mumbai")

	w = do(t, h, http.MethodGet, "/")
	require.Contains(t, w.Body.String(), "Change the network to Mumbai")
}

func TestAPI_MintRequiresConnection(t *testing.T) {
	s, _, chain := newTestServer(80001)

	w := do(t, s.Handler(), http.MethodPost, "/api/mint")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.EqualValues(t, 0, chain.Minted())
}

func TestAPI_MintFailure(t *testing.T) {
	s, session, chain := newTestServer(80001)
	chain.MintErr = errors.New("insufficient funds")
	require.NoError(t, session.Connect(context.Background()))

	w := do(t, s.Handler(), http.MethodPost, "/api/mint")
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.False(t, session.Snapshot().Loading)
}

func TestForms_Redirect(t *testing.T) {
	s, session, chain := newTestServer(80001)
	h := s.Handler()

	w := do(t, h, http.MethodPost, "/connect")
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, session.Snapshot().Connected)

	w = do(t, h, http.MethodPost, "/mint")
	require.Equal(t, http.StatusSeeOther, w.Code)
	s.bgWG.Wait()
	require.EqualValues(t, 1, chain.Minted())

	w = do(t, h, http.MethodGet, "/")
	require.True(t, strings.Contains(w.Body.String(), "Public Mint"))
}
