package uinput

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/char5742/stylus-remap/internal/consts"
	"github.com/char5742/stylus-remap/internal/device"
	"github.com/char5742/stylus-remap/internal/event"
	"github.com/char5742/stylus-remap/internal/types"
)

type countingWriter struct {
	bytes.Buffer
	writes int
	err    error
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.err != nil {
		return 0, w.err
	}
	return w.Buffer.Write(p)
}

func tabletCaps() device.Capabilities {
	return device.Capabilities{
		Keys: []uint16{event.BtnToolPen, event.BtnTouch, event.BtnStylus, event.BtnStylus2},
		Abs: map[uint16]types.AbsInfo{
			event.AbsX:        {Minimum: 0, Maximum: 44704, Resolution: 200},
			event.AbsY:        {Minimum: 0, Maximum: 25146, Resolution: 200},
			event.AbsPressure: {Maximum: 8191},
			0x2f:              {Maximum: 9}, // ABS_MT_SLOT は複製しない
		},
		Msc:   []uint16{0x00, 0x04},
		Props: []uint16{0x01},
	}
}

func TestWriteFrameIsSingleWrite(t *testing.T) {
	w := &countingWriter{}
	events := []event.Event{
		event.New(event.Key, event.BtnRight, 1),
		event.New(event.Abs, event.AbsX, 100),
	}

	require.NoError(t, writeFrame(w, events))
	assert.Equal(t, 1, w.writes)

	got, err := event.Decode(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, append(events, event.New(event.Syn, event.SynReport, 0)), got)
}

func TestWriteFrameEmptyBatchStillSyncs(t *testing.T) {
	w := &countingWriter{}
	require.NoError(t, writeFrame(w, nil))

	got, err := event.Decode(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []event.Event{event.New(event.Syn, event.SynReport, 0)}, got)
}

func TestWriteFrameError(t *testing.T) {
	w := &countingWriter{err: errors.New("EINVAL")}
	assert.Error(t, writeFrame(w, []event.Event{event.New(event.Key, event.BtnLeft, 1)}))
}

func TestKeySet(t *testing.T) {
	keys := keySet(Options{Keys: []uint16{event.BtnTouch, event.BtnStylus, event.BtnRight}}, tabletCaps())

	assert.IsIncreasing(t, keys)
	for _, code := range []uint16{event.BtnToolPen, event.BtnTouch, event.BtnStylus2, event.BtnLeft, event.BtnMiddle, event.BtnRight, event.BtnTask, event.BtnMisc} {
		assert.Contains(t, keys, code)
	}
}

func TestAxisSet(t *testing.T) {
	assert.Equal(t, []uint16{event.AbsX, event.AbsY, event.AbsPressure}, axisSet(tabletCaps()))
}

func TestBuildUserDev(t *testing.T) {
	id := types.InputID{Bustype: consts.BusVirtual, Vendor: 0x4711, Product: 0x0818, Version: 1}

	dev := buildUserDev(Options{Name: "Stylus Button Proxy", ID: id, Forward: true}, tabletCaps())
	assert.Equal(t, "Stylus Button Proxy", string(bytes.TrimRight(dev.Name[:], "\x00")))
	assert.Equal(t, id, dev.ID)
	assert.Equal(t, int32(44704), dev.Absmax[event.AbsX])
	assert.Equal(t, int32(8191), dev.Absmax[event.AbsPressure])
	assert.Zero(t, dev.Absmax[0x2f])

	plain := buildUserDev(Options{Name: "x", ID: id}, tabletCaps())
	assert.Zero(t, plain.Absmax[event.AbsX], "no axes without forwarding")
}

func TestToUinputNameTruncates(t *testing.T) {
	long := bytes.Repeat([]byte("a"), 200)
	name := toUinputName(long)
	assert.Equal(t, byte(0), name[consts.MaxNameSize-1], "name stays NUL terminated")
	assert.Equal(t, byte('a'), name[consts.MaxNameSize-2])
}
