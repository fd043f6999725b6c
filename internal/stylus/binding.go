package stylus

import "github.com/char5742/stylus-remap/internal/event"

// 各マウスボタンに割り当てる出力キーコード
// 出力デバイスはペンタブレットとして登録されるため、
// 左は接触、中はサイドボタン、右はマウス右ボタンとして出す
const (
	LeftButtonCode   = event.BtnTouch
	MiddleButtonCode = event.BtnStylus
	RightButtonCode  = event.BtnRight
)

// BindingCodes は状態機械が出力しうるキーコード
var BindingCodes = [...]uint16{LeftButtonCode, MiddleButtonCode, RightButtonCode}

// Binding はマウスボタンと押下・解放イベントの対応
type Binding struct {
	Button string
	Code   uint16
}

var (
	leftBinding   = Binding{Button: "left", Code: LeftButtonCode}
	middleBinding = Binding{Button: "middle", Code: MiddleButtonCode}
	rightBinding  = Binding{Button: "right", Code: RightButtonCode}
)

func (b Binding) Press() event.Event {
	return event.New(event.Key, b.Code, 1)
}

func (b Binding) Release() event.Event {
	return event.New(event.Key, b.Code, 0)
}
