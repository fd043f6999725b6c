package stylus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/char5742/stylus-remap/internal/event"
)

func TestContextUpdate(t *testing.T) {
	ctx := NewContext()

	assert.True(t, ctx.Update(event.BtnToolPen, 1))
	assert.True(t, ctx.Update(event.BtnStylus, 1))
	assert.True(t, ctx.Update(event.BtnStylus2, 2)) // リピート値も押下扱い
	assert.True(t, ctx.Update(event.BtnTouch, 1))
	assert.Equal(t, Context{Pen: true, Stylus1: true, Stylus2: true, Touch: true}, *ctx)

	assert.True(t, ctx.Update(event.BtnStylus, 0))
	assert.False(t, ctx.Stylus1)
}

func TestContextIgnoresUnknownKeys(t *testing.T) {
	ctx := NewContext()
	assert.False(t, ctx.Update(event.BtnLeft, 1))
	assert.False(t, ctx.Update(0x141, 1)) // BTN_TOOL_RUBBER
	assert.Equal(t, Context{}, *ctx)

	_, ok := ctx.Latched(event.BtnLeft)
	assert.False(t, ok)
}

func TestContextLatched(t *testing.T) {
	ctx := &Context{Touch: true}
	pressed, ok := ctx.Latched(event.BtnTouch)
	assert.True(t, ok)
	assert.True(t, pressed)

	pressed, ok = ctx.Latched(event.BtnToolPen)
	assert.True(t, ok)
	assert.False(t, pressed)
}

func TestContextUpdatePosition(t *testing.T) {
	ctx := NewContext()
	ctx.UpdatePosition(event.AbsX, 1200)
	ctx.UpdatePosition(event.AbsY, 800)
	ctx.UpdatePosition(event.AbsPressure, 4000)
	assert.Equal(t, int32(1200), ctx.X)
	assert.Equal(t, int32(800), ctx.Y)
}
