package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nft-rainbow/rainbow-goutils/utils/ginutils"
	"github.com/sirupsen/logrus"

	"github.com/wangdayong228/lw3punks-client/internal/constants/enums"
	"github.com/wangdayong228/lw3punks-client/internal/mintui"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	CodeMintInFlight  = 40901
	CodeWrongNetwork  = 40001
	CodeNotConnected  = 40002
	CodeUpstreamError = 50201
)

// Options 为页面服务的展示参数。
type Options struct {
	MaxSupply    int
	PollInterval time.Duration
}

// StateResponse 为 /api/state 的返回结构。
type StateResponse struct {
	mintui.State
	Button    enums.Button    `json:"button"`
	MaxSupply int             `json:"maxSupply"`
	Notices   []mintui.Notice `json:"notices"`
}

// Server 把一个 mintui.Session 暴露为 HTML 页面与 JSON API。
// Run 期间视为页面已挂载：轮询开启；Run 返回前轮询停止。
type Server struct {
	session *mintui.Session
	poller  *mintui.Poller
	opts    Options
	engine  *gin.Engine

	// 后台 mint 使用的上下文，Run 结束时取消
	bgCtx    context.Context
	bgCancel context.CancelFunc
	bgWG     sync.WaitGroup
}

func New(session *mintui.Session, opts Options) *Server {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	bgCtx, bgCancel := context.WithCancel(context.Background())
	s := &Server{
		session:  session,
		poller:   mintui.NewPoller(session, opts.PollInterval),
		opts:     opts,
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}
	s.engine = s.routes()
	return s
}

// Handler 返回 http.Handler，便于测试。
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")))

	r.GET("/", s.index)
	r.POST("/connect", s.connectForm)
	r.POST("/mint", s.mintForm)

	api := r.Group("/api")
	api.GET("/state", s.getState)
	api.POST("/connect", s.postConnect)
	api.POST("/mint", s.postMint)
	return r
}

// Run 挂载页面：尝试连接钱包、启动轮询并监听 addr，ctx 结束后依次关闭。
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve 与 Run 相同，但使用调用方提供的 listener。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if err := s.connect(ctx); err != nil {
		logrus.WithError(err).Warn("initial wallet connect failed, waiting for user action")
	}

	if err := s.poller.Start(ctx); err != nil {
		_ = ln.Close()
		return err
	}
	defer s.poller.Stop()

	srv := &http.Server{Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", ln.Addr().String()).Info("minting page listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.shutdownBackground()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.shutdownBackground()
	return err
}

// connect 连接钱包，并在首次成功后读取合约的最大供应量。
func (s *Server) connect(ctx context.Context) error {
	if err := s.session.Connect(ctx); err != nil {
		return err
	}
	if _, ok := s.session.MaxSupply(); !ok {
		// 读取失败时沿用配置中的 maxSupply
		_ = s.session.RefreshMaxSupply(ctx)
	}
	return nil
}

func (s *Server) shutdownBackground() {
	s.bgCancel()
	s.bgWG.Wait()
}

func (s *Server) snapshot(drain bool) StateResponse {
	st := s.session.Snapshot()
	resp := StateResponse{
		State:     st,
		Button:    st.Button(),
		MaxSupply: s.opts.MaxSupply,
	}
	if n, ok := s.session.MaxSupply(); ok && n.IsInt64() {
		resp.MaxSupply = int(n.Int64())
	}
	if drain {
		resp.Notices = s.session.DrainNotices()
	}
	return resp
}

func (s *Server) index(c *gin.Context) {
	resp := s.snapshot(true)
	c.HTML(http.StatusOK, "index.html.tmpl", gin.H{
		"State":          resp.State,
		"Button":         resp.Button.String(),
		"Label":          resp.Button.Label(),
		"MaxSupply":      resp.MaxSupply,
		"Notices":        resp.Notices,
		"RefreshSeconds": int(s.opts.PollInterval.Seconds()),
	})
}

func (s *Server) connectForm(c *gin.Context) {
	// 错误已记录日志，网络不匹配时提示会在页面上展示
	_ = s.connect(c.Request.Context())
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) mintForm(c *gin.Context) {
	if s.session.Snapshot().Button() == enums.ButtonMint {
		s.startBackgroundMint()
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// startBackgroundMint 在后台发起 mint，页面立即返回并展示 Loading。
func (s *Server) startBackgroundMint() {
	s.bgWG.Add(1)
	go func() {
		defer s.bgWG.Done()
		if err := s.session.PublicMint(s.bgCtx); errors.Is(err, mintui.ErrMintInFlight) {
			logrus.Warn("mint ignored: another mint is in flight")
		}
	}()
}

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot(c.Query("drain") == "true"))
}

func (s *Server) postConnect(c *gin.Context) {
	if err := s.connect(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.snapshot(false))
}

func (s *Server) postMint(c *gin.Context) {
	if !s.session.Snapshot().Connected {
		c.AbortWithStatusJSON(http.StatusBadRequest, ginutils.GinErrorBody{
			Code:    CodeNotConnected,
			Message: "wallet is not connected",
		})
		return
	}
	if err := s.session.PublicMint(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.snapshot(false))
}

func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mintui.ErrMintInFlight):
		c.AbortWithStatusJSON(http.StatusConflict, ginutils.GinErrorBody{Code: CodeMintInFlight, Message: err.Error()})
	case errors.Is(err, mintui.ErrWrongNetwork):
		c.AbortWithStatusJSON(http.StatusBadRequest, ginutils.GinErrorBody{Code: CodeWrongNetwork, Message: err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusBadGateway, ginutils.GinErrorBody{Code: CodeUpstreamError, Message: err.Error()})
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("http request")
	}
}
