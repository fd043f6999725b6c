package main

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/char5742/stylus-remap/internal/config"
)

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	flags, err := parseFlags([]string{"-device", "/dev/input/event6"}, io.Discard)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Remap.Forward = false
	cfg.Log.Level = config.DebugMinimal
	require.NoError(t, flags.apply(cfg))

	assert.Equal(t, "/dev/input/event6", cfg.Device.Path)
	assert.False(t, cfg.Remap.Forward, "file value kept when -forward is absent")
	assert.Equal(t, config.DebugMinimal, cfg.Log.Level)
}

func TestFlagsAll(t *testing.T) {
	flags, err := parseFlags([]string{
		"-forward=false", "-debug", "2", "-wait", "3s", "-name", "Pen Proxy", "/dev/input/event9",
	}, io.Discard)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	require.NoError(t, flags.apply(cfg))
	assert.Equal(t, "/dev/input/event9", cfg.Device.Path)
	assert.False(t, cfg.Remap.Forward)
	assert.Equal(t, config.DebugTrace, cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.Device.WaitTimeout)
	assert.Equal(t, "Pen Proxy", cfg.Output.Name)
}

func TestFlagsInvalidDebugLevel(t *testing.T) {
	flags, err := parseFlags([]string{"-debug", "3", "/dev/input/event1"}, io.Discard)
	require.NoError(t, err)

	err = flags.apply(config.DefaultConfig())
	assert.ErrorIs(t, err, config.ErrInvalidDebugLevel)
}

func TestFlagsMissingDevice(t *testing.T) {
	flags, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Error(t, flags.apply(config.DefaultConfig()))
}

func TestFlagsTooManyArgs(t *testing.T) {
	_, err := parseFlags([]string{"/dev/input/event1", "/dev/input/event2"}, io.Discard)
	assert.Error(t, err)
}
