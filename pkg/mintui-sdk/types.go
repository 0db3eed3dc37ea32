package mintuisdk

// Button 取值：connect / loading / mint。
type Button string

const (
	ButtonConnect Button = "connect"
	ButtonLoading Button = "loading"
	ButtonMint    Button = "mint"
)

type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type StateResponse struct {
	Connected   bool     `json:"connected"`
	Loading     bool     `json:"loading"`
	MintedCount string   `json:"mintedCount"`
	Button      Button   `json:"button"`
	MaxSupply   int      `json:"maxSupply"`
	Notices     []Notice `json:"notices"`
}
