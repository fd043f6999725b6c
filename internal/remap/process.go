package remap

import (
	"errors"
	"time"

	"github.com/char5742/stylus-remap/internal/consts"
	"github.com/char5742/stylus-remap/internal/device"
	"github.com/char5742/stylus-remap/internal/logging"
	"github.com/char5742/stylus-remap/internal/stylus"
	"github.com/char5742/stylus-remap/internal/types"
	"github.com/char5742/stylus-remap/internal/uinput"
)

// Options はProcessの設定
type Options struct {
	DevicePath  string
	Forward     bool
	OutputName  string
	OutputID    types.InputID
	WaitTimeout time.Duration
	UinputPath  string // 空なら/dev/uinput
}

// Process はデバイスを専有し、仮想デバイスへリマップしたイベントを出し続ける
// 戻るのは失敗したときだけで、エラーは常に*DeviceError
func Process(opts Options) error {
	log := logging.GetSubsystemLogger("remap")
	path := opts.DevicePath

	if err := device.WaitForDevice(path, opts.WaitTimeout); err != nil {
		return &DeviceError{Op: "wait", Path: path, Err: err}
	}

	dev, err := device.Open(path)
	if err != nil {
		return &DeviceError{Op: "open", Path: path, Err: err}
	}
	defer dev.Close()

	name, err := dev.Name()
	if err != nil {
		name = "unknown"
	}

	caps, err := dev.Capabilities()
	if err != nil {
		return &DeviceError{Op: "query", Path: path, Err: err}
	}
	if !caps.IsStylus() {
		return &DeviceError{Op: "open", Path: path, Err: device.ErrNotStylus}
	}

	log.Info().Str("device", name).Str("path", dev.Path()).Msg("grabbing device")
	if err := dev.Grab(); err != nil {
		return &DeviceError{Op: "grab", Path: path, Err: err}
	}

	uinputPath := opts.UinputPath
	if uinputPath == "" {
		uinputPath = consts.UinputPath
	}
	out, err := uinput.Create(uinputPath, uinput.Options{
		Name:    opts.OutputName,
		ID:      opts.OutputID,
		Keys:    stylus.BindingCodes[:],
		Forward: opts.Forward,
	}, caps, logging.GetSubsystemLogger("uinput"))
	if err != nil {
		return &DeviceError{Op: "create", Path: uinputPath, Err: err}
	}
	defer out.Close()
	log.Info().Str("output", out.Name()).Msg("remapping")

	r := NewRemapper(dev, out, opts.Forward, log)
	err = r.Run()

	var de *DeviceError
	if errors.As(err, &de) && de.Path == "" {
		if de.Op == "emit" {
			de.Path = uinputPath
		} else {
			de.Path = path
		}
	}
	return err
}
