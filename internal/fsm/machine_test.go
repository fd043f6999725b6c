package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type door struct {
	opened int
}

type closed struct{}

func (closed) Update(ctx *door, ev string) Transition[door, string, string] {
	switch ev {
	case "open":
		return Change[door, string, string](open{}, "handle turned")
	case "knock":
		return Stay[door, string, string]("knock knock")
	}
	return Stay[door, string, string]()
}

func (closed) Exit(*door) []string { return []string{"unlatch"} }

type open struct{}

func (open) String() string { return "open" }

func (open) Enter(ctx *door) []string {
	ctx.opened++
	return []string{"swing"}
}

func (open) Update(_ *door, ev string) Transition[door, string, string] {
	if ev == "close" {
		return Change[door, string, string](closed{})
	}
	return Stay[door, string, string]()
}

// hooks を持たない状態
type jammed struct{}

func (jammed) Update(*door, string) Transition[door, string, string] {
	return Change[door, string, string](closed{}, "freed")
}

func TestStayReturnsOutputsWithoutHooks(t *testing.T) {
	ctx := &door{}
	m := New[door, string, string](closed{}, nil)

	assert.Equal(t, []string{"knock knock"}, m.HandleEvent(ctx, "knock"))
	assert.Empty(t, m.HandleEvent(ctx, "unknown"))
	assert.Equal(t, closed{}, m.State())
	assert.Zero(t, ctx.opened)
}

func TestChangeOrdersUpdateExitEnter(t *testing.T) {
	ctx := &door{}
	m := New[door, string, string](closed{}, nil)

	out := m.HandleEvent(ctx, "open")
	assert.Equal(t, []string{"handle turned", "unlatch", "swing"}, out)
	assert.Equal(t, open{}, m.State())
	assert.Equal(t, 1, ctx.opened)

	// open は Exit を持たず closed は Enter を持たない
	assert.Empty(t, m.HandleEvent(ctx, "close"))
	assert.Equal(t, closed{}, m.State())
}

func TestOptionalHooks(t *testing.T) {
	ctx := &door{}
	m := New[door, string, string](jammed{}, nil)

	assert.Equal(t, []string{"freed"}, m.HandleEvent(ctx, "anything"))
	assert.Equal(t, closed{}, m.State())
}

func TestTransitionAccessors(t *testing.T) {
	s := Stay[door, string, string]("a")
	assert.False(t, s.Changed())
	assert.Nil(t, s.Next())
	assert.Equal(t, []string{"a"}, s.Outputs())

	c := Change[door, string, string](open{})
	require.True(t, c.Changed())
	assert.Equal(t, open{}, c.Next())
	assert.Empty(t, c.Outputs())
}

func TestName(t *testing.T) {
	assert.Equal(t, "open", Name(open{}))
	assert.Equal(t, "fsm.closed", Name(closed{}))
}

func TestNewRejectsNilState(t *testing.T) {
	assert.Panics(t, func() { New[door, string, string](nil, nil) })
}
