package mintuisdk

import (
	"context"
	"net/http"
)

// Page 聚合铸造页面 `/api` 下的接口。
type Page struct {
	http *HTTPClient
}

// GetState 读取页面状态；drain=true 时同时取走待展示的提示。
func (p Page) GetState(ctx context.Context, drain bool) (*StateResponse, error) {
	path := "/api/state"
	if drain {
		path += "?drain=true"
	}
	var out StateResponse
	if err := p.http.do(ctx, http.MethodGet, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p Page) Connect(ctx context.Context) (*StateResponse, error) {
	var out StateResponse
	if err := p.http.do(ctx, http.MethodPost, "/api/connect", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mint 发起一次 mint 并等待确认。
func (p Page) Mint(ctx context.Context) (*StateResponse, error) {
	var out StateResponse
	if err := p.http.do(ctx, http.MethodPost, "/api/mint", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
