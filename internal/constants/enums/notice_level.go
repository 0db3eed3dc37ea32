package enums

import (
	"github.com/nft-rainbow/rainbow-goutils/utils/enumutils"
)

// NoticeLevel 区分阻塞式提示（alert）与成功通知。
type NoticeLevel int8

const (
	NoticeLevelAlert NoticeLevel = iota + 1
	NoticeLevelSuccess
)

var NoticeLevelEb enumutils.EnumBase[NoticeLevel]

func init() {
	NoticeLevelEb = enumutils.NewEnumBase("NoticeLevel", map[NoticeLevel]string{
		NoticeLevelAlert:   "alert",
		NoticeLevelSuccess: "success",
	})
}

func (l NoticeLevel) MarshalText() ([]byte, error) {
	return NoticeLevelEb.MarshalText(l)
}

func (l *NoticeLevel) UnmarshalText(data []byte) error {
	val, err := NoticeLevelEb.UnmarshalText(data)
	if err != nil {
		return err
	}
	*l = val
	return nil
}

func (l NoticeLevel) String() string {
	return NoticeLevelEb.String(l)
}
