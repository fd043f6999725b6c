package event

import (
	"fmt"
	"syscall"
)

// イベントタイプの定数（input-event-codes.hより）
const (
	Syn = 0x00 // 同期イベント
	Key = 0x01 // キーイベント
	Rel = 0x02 // 相対座標イベント
	Abs = 0x03 // 絶対座標イベント
	Msc = 0x04 // その他のイベント
)

// 同期イベントのコード
const (
	SynReport  = 0 // イベント報告の同期
	SynDropped = 3 // カーネルのバッファ溢れ
)

// キーコード
const (
	BtnMisc    = 0x100 // その他ボタンの先頭
	BtnLeft    = 0x110 // マウス左ボタン
	BtnRight   = 0x111 // マウス右ボタン
	BtnMiddle  = 0x112 // マウス中ボタン
	BtnTask    = 0x117 // マウスボタンの末尾
	BtnToolPen = 0x140 // ペンが検出範囲内にある
	BtnTouch   = 0x14a // ペン先の接触
	BtnStylus  = 0x14b // サイドボタン1
	BtnStylus2 = 0x14c // サイドボタン2

	KeyMax = 0x2ff
)

// 絶対座標のコード
const (
	AbsX        = 0x00
	AbsY        = 0x01
	AbsZ        = 0x02
	AbsWheel    = 0x08
	AbsPressure = 0x18
	AbsDistance = 0x19
	AbsTiltX    = 0x1a
	AbsTiltY    = 0x1b
	AbsMisc     = 0x28

	AbsMax = 0x3f
)

const (
	MscMax  = 0x07
	PropMax = 0x1f
)

// Category はリマップ処理から見たイベントの分類
type Category int

const (
	CategoryOther Category = iota
	CategoryKey
	CategorySync
)

func (c Category) String() string {
	switch c {
	case CategoryKey:
		return "key"
	case CategorySync:
		return "sync"
	default:
		return "other"
	}
}

// Event は入力イベントを表す構造体
type Event struct {
	Time  syscall.Timeval // イベント発生時刻
	Type  uint16          // イベントタイプ
	Code  uint16          // イベントコード
	Value int32           // イベント値
}

// New はタイムスタンプなしのイベントを作成する
func New(typ, code uint16, value int32) Event {
	return Event{Type: typ, Code: code, Value: value}
}

func (e Event) Category() Category {
	switch e.Type {
	case Key:
		return CategoryKey
	case Syn:
		return CategorySync
	default:
		return CategoryOther
	}
}

// Pressed はキーイベントが押下（またはリピート）を表すかどうか
func (e Event) Pressed() bool {
	return e.Value != 0
}

// Normalize はタイムスタンプを取り除いたコピーを返す
// 出力時刻はカーネル側で付与される
func (e Event) Normalize() Event {
	return Event{Type: e.Type, Code: e.Code, Value: e.Value}
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s %d", TypeName(e.Type), CodeName(e.Type, e.Code), e.Value)
}

var typeNames = map[uint16]string{
	Syn: "EV_SYN",
	Key: "EV_KEY",
	Rel: "EV_REL",
	Abs: "EV_ABS",
	Msc: "EV_MSC",
}

var keyNames = map[uint16]string{
	BtnLeft:    "BTN_LEFT",
	BtnRight:   "BTN_RIGHT",
	BtnMiddle:  "BTN_MIDDLE",
	BtnToolPen: "BTN_TOOL_PEN",
	BtnTouch:   "BTN_TOUCH",
	BtnStylus:  "BTN_STYLUS",
	BtnStylus2: "BTN_STYLUS2",
}

var absNames = map[uint16]string{
	AbsX:        "ABS_X",
	AbsY:        "ABS_Y",
	AbsZ:        "ABS_Z",
	AbsWheel:    "ABS_WHEEL",
	AbsPressure: "ABS_PRESSURE",
	AbsDistance: "ABS_DISTANCE",
	AbsTiltX:    "ABS_TILT_X",
	AbsTiltY:    "ABS_TILT_Y",
	AbsMisc:     "ABS_MISC",
}

var synNames = map[uint16]string{
	SynReport:  "SYN_REPORT",
	SynDropped: "SYN_DROPPED",
}

func TypeName(typ uint16) string {
	if name, ok := typeNames[typ]; ok {
		return name
	}
	return fmt.Sprintf("EV_%#02x", typ)
}

func CodeName(typ, code uint16) string {
	var names map[uint16]string
	switch typ {
	case Syn:
		names = synNames
	case Key:
		names = keyNames
	case Abs:
		names = absNames
	}
	if name, ok := names[code]; ok {
		return name
	}
	return fmt.Sprintf("%#03x", code)
}
