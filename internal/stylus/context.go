package stylus

import "github.com/char5742/stylus-remap/internal/event"

// Context は全状態が参照するペンの入力状態
// 各フィールドは対応する入力の最新の値を保持する
type Context struct {
	Pen     bool // ペンが検出範囲内にある
	Stylus1 bool // サイドボタン1が押されている
	Stylus2 bool // サイドボタン2が押されている
	Touch   bool // ペン先が接触している

	// 最後に観測した絶対座標。遷移には使わない
	X int32
	Y int32
}

// NewContext は初期状態（すべて解放）のコンテキストを作成する
func NewContext() *Context {
	return &Context{}
}

// TrackedKeys はContextが保持するキーコード
// 検出範囲、ボタン1、ボタン2、接触の順
var TrackedKeys = [...]uint16{
	event.BtnToolPen,
	event.BtnStylus,
	event.BtnStylus2,
	event.BtnTouch,
}

// Update はキーイベントの値を対応するフィールドに反映する
// 対応するフィールドのないキーは無視してfalseを返す
func (c *Context) Update(code uint16, value int32) bool {
	latch := c.latch(code)
	if latch == nil {
		return false
	}
	*latch = value != 0
	return true
}

// Latched はcodeに対応するフィールドの値を返す
func (c *Context) Latched(code uint16) (pressed bool, ok bool) {
	latch := c.latch(code)
	if latch == nil {
		return false, false
	}
	return *latch, true
}

func (c *Context) latch(code uint16) *bool {
	switch code {
	case event.BtnToolPen:
		return &c.Pen
	case event.BtnStylus:
		return &c.Stylus1
	case event.BtnStylus2:
		return &c.Stylus2
	case event.BtnTouch:
		return &c.Touch
	}
	return nil
}

// UpdatePosition は絶対座標を記録する
func (c *Context) UpdatePosition(code uint16, value int32) {
	switch code {
	case event.AbsX:
		c.X = value
	case event.AbsY:
		c.Y = value
	}
}
