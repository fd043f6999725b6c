package device

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/char5742/stylus-remap/internal/event"
	"github.com/char5742/stylus-remap/internal/types"
)

func TestScanDevices(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"event0", "event1", "event2", "mouse0"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	byID := filepath.Join(dir, "by-id")
	require.NoError(t, os.Mkdir(byID, 0o755))
	require.NoError(t, os.Symlink("../event1", filepath.Join(byID, "usb-Wacom_Cintiq-event-stylus")))
	require.NoError(t, os.Symlink("../mouse0", filepath.Join(byID, "usb-Wacom_Cintiq-mouse")))

	probe := func(path string) (Info, error) {
		switch filepath.Base(path) {
		case "event0":
			return Info{Name: "Power Button"}, nil
		case "event1":
			return Info{Name: "Wacom Cintiq Pen", Stylus: true}, nil
		}
		return Info{}, errors.New("permission denied")
	}

	devices, err := scanDevices(dir, probe)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, Info{Path: filepath.Join(dir, "event0"), Name: "Power Button"}, devices[0])
	assert.Equal(t, Info{
		Path:    filepath.Join(dir, "event1"),
		Name:    "Wacom Cintiq Pen",
		Aliases: []string{filepath.Join(byID, "usb-Wacom_Cintiq-event-stylus")},
		Stylus:  true,
	}, devices[1])
}

func TestCapabilitiesIsStylus(t *testing.T) {
	caps := Capabilities{
		Keys: []uint16{event.BtnToolPen, event.BtnTouch, event.BtnStylus},
		Abs:  map[uint16]types.AbsInfo{event.AbsX: {Maximum: 32767}},
	}
	assert.True(t, caps.IsStylus())
	assert.True(t, caps.HasKey(event.BtnStylus))
	assert.False(t, caps.HasKey(event.BtnStylus2))

	assert.False(t, Capabilities{Keys: []uint16{event.BtnLeft}}.IsStylus())
}

func TestToCodes(t *testing.T) {
	assert.Equal(t, []uint16{event.BtnToolPen, event.BtnTouch}, toCodes([]int{0x140, 0x14a}))
}
