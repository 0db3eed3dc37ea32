package mintui

import (
	"github.com/wangdayong228/lw3punks-client/internal/constants/enums"
)

// State 为铸造页面的全部展示状态，只由 Session 自身修改。
type State struct {
	// Connected 在钱包握手且网络校验通过后置为 true，会话内不会重置。
	Connected bool `json:"connected"`
	// Loading 严格对应一笔 mint 交易从提交到确认的区间。
	Loading bool `json:"loading"`
	// MintedCount 为十进制字符串形式的已铸造数量。
	MintedCount string `json:"mintedCount"`
}

// Button 返回当前状态下应展示的按钮。
func (st State) Button() enums.Button {
	return SelectButton(st.Connected, st.Loading)
}

// Notice 为需要展示给用户的提示。
type Notice struct {
	Level   enums.NoticeLevel `json:"level"`
	Message string            `json:"message"`
}

// SelectButton 是 (connected, loading) 的纯函数：
// 未连接 -> 连接按钮；连接中且 loading -> 加载按钮；否则 -> 铸造按钮。
func SelectButton(connected, loading bool) enums.Button {
	if !connected {
		return enums.ButtonConnect
	}
	if loading {
		return enums.ButtonLoading
	}
	return enums.ButtonMint
}
