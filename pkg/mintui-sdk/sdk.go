package mintuisdk

// Client 是 SDK 对外入口。
type Client struct {
	Page Page
}

func New(baseURL string, opts ...Option) *Client {
	hc := NewHTTPClient(baseURL, opts...)
	return &Client{
		Page: Page{http: hc},
	}
}
