package enums

import (
	"github.com/nft-rainbow/rainbow-goutils/utils/enumutils"
)

// Button 表示铸造页面当前应展示的按钮，由 (connected, loading) 唯一决定。
type Button int8

const (
	ButtonConnect Button = iota + 1
	ButtonLoading
	ButtonMint
)

var ButtonEb enumutils.EnumBase[Button]

func init() {
	ButtonEb = enumutils.NewEnumBase("Button", map[Button]string{
		ButtonConnect: "connect",
		ButtonLoading: "loading",
		ButtonMint:    "mint",
	})
}

func (b Button) MarshalText() ([]byte, error) {
	return ButtonEb.MarshalText(b)
}

func (b *Button) UnmarshalText(data []byte) error {
	val, err := ButtonEb.UnmarshalText(data)
	if err != nil {
		return err
	}
	*b = val
	return nil
}

func (b Button) String() string {
	return ButtonEb.String(b)
}

// Label 返回按钮在页面上的文案。
func (b Button) Label() string {
	switch b {
	case ButtonConnect:
		return "Connect your wallet!"
	case ButtonLoading:
		return "Loading..."
	case ButtonMint:
		return "Public Mint"
	default:
		return ""
	}
}

func ParseButton(s string) (Button, error) {
	return ButtonEb.Parse(s)
}
