package mintuisdk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nft-rainbow/rainbow-goutils/utils/ginutils"
)

// HTTPClient 是最原生的 HTTP 交互层：负责 resty client、通用请求、错误解析。
type HTTPClient struct {
	http *resty.Client
}

type Option func(*HTTPClient)

// NewHTTPClient 创建底层 HTTP 客户端。
// mint 接口会等待交易确认，默认超时比普通查询更长。
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	baseURL = strings.TrimRight(baseURL, "/")

	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(3 * time.Minute)

	c := &HTTPClient{http: rc}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func WithRestyClient(rc *resty.Client) Option {
	return func(c *HTTPClient) {
		if rc != nil {
			c.http = rc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// APIError 表示服务端返回的 ginutils.GinErrorBody。
type APIError struct {
	StatusCode int
	Body       ginutils.GinErrorBody
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lw3punks page api error: status=%d code=%d message=%q", e.StatusCode, e.Body.Code, e.Body.Message)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, out any) error {
	ge := new(ginutils.GinErrorBody)
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(ge).
		Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		if ge.Message == "" && resp.Body() != nil {
			ge.Message = string(resp.Body())
		}
		return &APIError{StatusCode: resp.StatusCode(), Body: *ge}
	}
	return nil
}
