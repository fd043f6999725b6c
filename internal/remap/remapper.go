package remap

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/char5742/stylus-remap/internal/event"
	"github.com/char5742/stylus-remap/internal/fsm"
	"github.com/char5742/stylus-remap/internal/stylus"
)

// Source は物理デバイスからのイベント列
type Source interface {
	// FetchEvents は次のイベントが届くまでブロックし、受信順に返す
	FetchEvents() ([]event.Event, error)
}

// KeyStater は現在押されているキーを問い合わせられるSource
type KeyStater interface {
	PressedKeys() ([]uint16, error)
}

// Sink は仮想出力デバイス
type Sink interface {
	// Emit はイベント列をSYN_REPORTで閉じて一度に書き込む
	// eventsは呼び出し後に再利用されるため保持してはならない
	Emit(events []event.Event) error
}

// Remapper はSYN_REPORTごとにイベントをまとめて出力する
//
// キーイベントはContextを更新してから状態機械に渡し、その出力をバッチに積む。
// それ以外のイベントは転送が有効なときだけバッチに積む。
// バッチはSYN_REPORTで出力され、必ず空に戻る。
type Remapper struct {
	source  Source
	sink    Sink
	forward bool

	ctx     *stylus.Context
	machine *stylus.Machine

	batch   []event.Event
	dropped bool

	log *zerolog.Logger
}

// NewRemapper はIdle状態から始まるRemapperを作成する
func NewRemapper(source Source, sink Sink, forward bool, logger *zerolog.Logger) *Remapper {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &Remapper{
		source:  source,
		sink:    sink,
		forward: forward,
		ctx:     stylus.NewContext(),
		machine: stylus.NewMachine(logger),
		batch:   make([]event.Event, 0, 64),
		log:     logger,
	}
}

// Run はSourceが失敗するまでイベントを処理し続ける
func (r *Remapper) Run() error {
	for {
		events, err := r.source.FetchEvents()
		if err != nil {
			return &DeviceError{Op: "read", Err: err}
		}
		for _, ev := range events {
			if err := r.HandleEvent(ev); err != nil {
				return err
			}
		}
	}
}

// HandleEvent はイベントをひとつ処理する
func (r *Remapper) HandleEvent(ev event.Event) error {
	if ev.Category() == event.CategorySync {
		switch ev.Code {
		case event.SynReport:
			if r.dropped {
				r.dropped = false
				if err := r.resync(); err != nil {
					return err
				}
			}
			return r.flush()
		case event.SynDropped:
			// 次のSYN_REPORTまでのイベントは不完全なので捨てる
			r.log.Debug().Int("discarded", len(r.batch)).Msg("kernel dropped events")
			r.batch = r.batch[:0]
			r.dropped = true
			return nil
		}
	}
	if r.dropped {
		return nil
	}

	switch ev.Category() {
	case event.CategoryKey:
		r.handleKey(ev)
	default:
		if ev.Type == event.Abs {
			r.ctx.UpdatePosition(ev.Code, ev.Value)
		}
		if !r.forward {
			return nil
		}
		r.log.Trace().Stringer("event", ev).Msg("forward")
		r.batch = append(r.batch, ev.Normalize())
	}
	return nil
}

func (r *Remapper) handleKey(ev event.Event) {
	r.ctx.Update(ev.Code, ev.Value)

	out := r.machine.HandleEvent(r.ctx, ev.Normalize())
	if len(out) == 0 {
		r.log.Trace().Stringer("event", ev).Str("state", r.State()).Msg("ignored")
		return
	}
	for _, o := range out {
		r.log.Debug().Stringer("event", o).Str("state", r.State()).Msg("remapped")
	}
	r.batch = append(r.batch, out...)
}

// flush はバッチを出力してから空にする
func (r *Remapper) flush() error {
	defer func() { r.batch = r.batch[:0] }()

	if len(r.batch) == 0 && !r.forward {
		return nil
	}
	if err := r.sink.Emit(r.batch); err != nil {
		return &DeviceError{Op: "emit", Err: err}
	}
	return nil
}

// resync はイベント欠落後に実際のキー状態とContextの差分を
// 通常のキーイベントとして流し直す
// ペン、接触の解放、ボタン1、ボタン2、接触の押下の順に処理する
func (r *Remapper) resync() error {
	ks, ok := r.source.(KeyStater)
	if !ok {
		r.log.Warn().Msg("cannot resync key state after dropped events")
		return nil
	}
	pressed, err := ks.PressedKeys()
	if err != nil {
		return &DeviceError{Op: "resync", Err: err}
	}

	diff := func(code uint16) (int32, bool) {
		want := slices.Contains(pressed, code)
		have, _ := r.ctx.Latched(code)
		if want == have {
			return 0, false
		}
		if want {
			return 1, true
		}
		return 0, true
	}

	touch, touchChanged := diff(event.BtnTouch)
	order := []uint16{event.BtnToolPen}
	if touchChanged && touch == 0 {
		order = append(order, event.BtnTouch)
	}
	order = append(order, event.BtnStylus, event.BtnStylus2)
	if touchChanged && touch == 1 {
		order = append(order, event.BtnTouch)
	}

	for _, code := range order {
		value, changed := diff(code)
		if !changed {
			continue
		}
		r.log.Debug().Str("key", event.CodeName(event.Key, code)).Int32("value", value).Msg("resync")
		r.handleKey(event.New(event.Key, code, value))
	}
	return nil
}

// State は現在の状態名
func (r *Remapper) State() string {
	return fsm.Name(r.machine.State())
}

// Context は現在のContextのコピー
func (r *Remapper) Context() stylus.Context {
	return *r.ctx
}

// Pending は出力待ちのイベント数
func (r *Remapper) Pending() int {
	return len(r.batch)
}
