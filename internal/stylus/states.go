package stylus

import (
	"github.com/rs/zerolog"

	"github.com/char5742/stylus-remap/internal/event"
	"github.com/char5742/stylus-remap/internal/fsm"
)

type (
	// State はペンボタン状態機械の状態
	State = fsm.State[Context, event.Event, event.Event]
	// Machine はペンボタン状態機械
	Machine = fsm.Machine[Context, event.Event, event.Event]

	transition = fsm.Transition[Context, event.Event, event.Event]
)

// NewMachine はIdleから始まる状態機械を作成する
func NewMachine(logger *zerolog.Logger) *Machine {
	return fsm.New[Context, event.Event, event.Event](Idle{}, logger)
}

func stay() transition {
	return fsm.Stay[Context, event.Event, event.Event]()
}

func change(next State) transition {
	return fsm.Change[Context, event.Event, event.Event](next)
}

// Button は状態が押下中として保持しているボタンを返す
func Button(s State) (Binding, bool) {
	switch s.(type) {
	case LeftClick:
		return leftBinding, true
	case MiddleClick:
		return middleBinding, true
	case RightClick:
		return rightBinding, true
	}
	return Binding{}, false
}

// Idle はどのボタンも押されていない状態
type Idle struct{}

func (Idle) String() string { return "idle" }

// Update はペン先が接触したときに、その時点で保持されている
// サイドボタンに応じてクリック状態へ遷移する
// 両方のボタンが押されている場合はボタン1（右クリック）を優先する
func (Idle) Update(ctx *Context, ev event.Event) transition {
	if !ctx.Pen || ev.Type != event.Key {
		return stay()
	}

	switch ev.Code {
	case event.BtnStylus, event.BtnStylus2:
		// 接触前のボタンは修飾として保持するだけ
		return stay()
	case event.BtnTouch:
		if !ctx.Touch {
			return stay()
		}
		switch {
		case ctx.Stylus1:
			return change(RightClick{})
		case ctx.Stylus2:
			return change(MiddleClick{})
		default:
			return change(LeftClick{})
		}
	}
	return stay()
}

// LeftClick は修飾なしでペン先が接触している状態
type LeftClick struct{}

func (LeftClick) String() string { return "left-click" }

func (LeftClick) Enter(*Context) []event.Event { return []event.Event{leftBinding.Press()} }

func (LeftClick) Exit(*Context) []event.Event { return []event.Event{leftBinding.Release()} }

func (LeftClick) Update(ctx *Context, ev event.Event) transition {
	if !ctx.Pen {
		return change(Idle{})
	}
	if ev.Type != event.Key {
		return stay()
	}

	switch ev.Code {
	case event.BtnTouch:
		if !ctx.Touch {
			return change(Idle{})
		}
	case event.BtnStylus:
		if ctx.Touch && ctx.Stylus1 {
			return change(RightClick{})
		}
	case event.BtnStylus2:
		if ctx.Touch && ctx.Stylus2 {
			return change(MiddleClick{})
		}
	}
	return stay()
}

// MiddleClick はボタン2を押したまま接触している状態
type MiddleClick struct{}

func (MiddleClick) String() string { return "middle-click" }

func (MiddleClick) Enter(*Context) []event.Event { return []event.Event{middleBinding.Press()} }

func (MiddleClick) Exit(*Context) []event.Event { return []event.Event{middleBinding.Release()} }

func (MiddleClick) Update(ctx *Context, ev event.Event) transition {
	if !ctx.Pen {
		return change(Idle{})
	}
	if ev.Type != event.Key {
		return stay()
	}

	switch ev.Code {
	case event.BtnTouch:
		if !ctx.Touch {
			return change(Idle{})
		}
	case event.BtnStylus, event.BtnStylus2:
		// どちらかのボタンが残っていれば中クリックのまま
		if !ev.Pressed() && ctx.Touch && !ctx.Stylus1 && !ctx.Stylus2 {
			return change(LeftClick{})
		}
	}
	return stay()
}

// RightClick はボタン1を押したまま接触している状態
type RightClick struct{}

func (RightClick) String() string { return "right-click" }

func (RightClick) Enter(*Context) []event.Event { return []event.Event{rightBinding.Press()} }

func (RightClick) Exit(*Context) []event.Event { return []event.Event{rightBinding.Release()} }

func (RightClick) Update(ctx *Context, ev event.Event) transition {
	if !ctx.Pen {
		return change(Idle{})
	}
	if ev.Type != event.Key {
		return stay()
	}

	switch ev.Code {
	case event.BtnTouch:
		if !ctx.Touch {
			return change(Idle{})
		}
	case event.BtnStylus, event.BtnStylus2:
		// どちらかのボタンが残っていれば右クリックのまま
		if !ev.Pressed() && ctx.Touch && !ctx.Stylus1 && !ctx.Stylus2 {
			return change(LeftClick{})
		}
	}
	return stay()
}
