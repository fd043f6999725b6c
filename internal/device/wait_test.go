package device

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForDeviceExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event3")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	assert.NoError(t, WaitForDevice(path, time.Second))
}

func TestWaitForDeviceCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event7")

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, nil, 0o600)
	}()

	start := time.Now()
	require.NoError(t, WaitForDevice(path, 5*time.Second))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWaitForDeviceTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event9")

	err := WaitForDevice(path, 100*time.Millisecond)
	assert.ErrorIs(t, err, ErrWaitTimeout)
}

func TestWaitForDeviceDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	assert.NoError(t, WaitForDevice(path, 0))
}

func TestWaitForDeviceMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "event1")
	assert.Error(t, WaitForDevice(path, 100*time.Millisecond))
}
