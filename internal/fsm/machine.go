// Package fsm は汎用の有限状態機械を提供する。
//
// 状態はコンテキスト型C、入力イベント型E、出力型Oでパラメータ化される。
// 状態はUpdateを必ず実装し、EnterとExitは必要な状態だけが実装する。
package fsm

import (
	"fmt"

	"github.com/rs/zerolog"
)

// State は状態機械の一状態を表すインターフェース
type State[C, E, O any] interface {
	Update(ctx *C, event E) Transition[C, E, O]
}

// Enterer はこの状態に入るときの出力を返す
type Enterer[C, O any] interface {
	Enter(ctx *C) []O
}

// Exiter はこの状態から出るときの出力を返す
type Exiter[C, O any] interface {
	Exit(ctx *C) []O
}

// Transition はUpdateの結果
// nextがnilならStay、そうでなければChange
type Transition[C, E, O any] struct {
	next    State[C, E, O]
	outputs []O
}

// Stay は現在の状態に留まる遷移を返す
func Stay[C, E, O any](outputs ...O) Transition[C, E, O] {
	return Transition[C, E, O]{outputs: outputs}
}

// Change はnextへ移る遷移を返す
func Change[C, E, O any](next State[C, E, O], outputs ...O) Transition[C, E, O] {
	return Transition[C, E, O]{next: next, outputs: outputs}
}

// Changed は状態が変わる遷移かどうか
func (t Transition[C, E, O]) Changed() bool {
	return t.next != nil
}

// Next は遷移先の状態。Stayの場合はnil
func (t Transition[C, E, O]) Next() State[C, E, O] {
	return t.next
}

// Outputs はUpdateが直接返した出力
func (t Transition[C, E, O]) Outputs() []O {
	return t.outputs
}

// Machine は常にひとつの状態をアクティブに保つ状態機械
type Machine[C, E, O any] struct {
	state State[C, E, O]
	log   *zerolog.Logger
}

// New はinitialを初期状態とする状態機械を作成する
// 初期状態のEnterは呼ばれない
func New[C, E, O any](initial State[C, E, O], logger *zerolog.Logger) *Machine[C, E, O] {
	if initial == nil {
		panic("fsm: nil initial state")
	}
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &Machine[C, E, O]{state: initial, log: logger}
}

// State は現在アクティブな状態を返す
func (m *Machine[C, E, O]) State() State[C, E, O] {
	return m.state
}

// HandleEvent はイベントを現在の状態に渡し、出力を返す
//
// 状態が変わる場合の出力順は
// Updateの出力、現在の状態のExit、次の状態のEnterで固定。
func (m *Machine[C, E, O]) HandleEvent(ctx *C, event E) []O {
	t := m.state.Update(ctx, event)
	if !t.Changed() {
		return t.outputs
	}

	outputs := t.outputs
	if ex, ok := m.state.(Exiter[C, O]); ok {
		outputs = append(outputs, ex.Exit(ctx)...)
	}
	if en, ok := t.next.(Enterer[C, O]); ok {
		outputs = append(outputs, en.Enter(ctx)...)
	}

	m.log.Debug().
		Str("from", Name(m.state)).
		Str("to", Name(t.next)).
		Int("outputs", len(outputs)).
		Msg("state change")

	m.state = t.next
	return outputs
}

// Name はログ用の状態名を返す
func Name(s any) string {
	if st, ok := s.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", s)
}
