package uinput

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/char5742/stylus-remap/internal/consts"
	"github.com/char5742/stylus-remap/internal/device"
	"github.com/char5742/stylus-remap/internal/event"
	"github.com/char5742/stylus-remap/internal/types"
	"github.com/char5742/stylus-remap/internal/utils"
)

// 転送時に複製する絶対座標軸
var forwardedAxes = []uint16{
	event.AbsTiltX,
	event.AbsTiltY,
	event.AbsX,
	event.AbsY,
	event.AbsZ,
	event.AbsDistance,
	event.AbsPressure,
	event.AbsWheel,
	event.AbsMisc,
}

// Options は仮想デバイスの設定
type Options struct {
	Name    string
	ID      types.InputID
	Keys    []uint16 // 物理デバイスのキーに加えて登録するキー
	Forward bool     // 絶対座標、MSC、プロパティも複製する
}

// Device はuinputで作成した仮想出力デバイス
type Device struct {
	file *os.File
	name string
	log  *zerolog.Logger
}

// Create は物理デバイスの能力をもとに仮想デバイスを作成する
func Create(path string, opts Options, caps device.Capabilities, logger *zerolog.Logger) (*Device, error) {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}

	deviceFile, err := createDeviceFile(path)
	if err != nil {
		return nil, err
	}

	if err := register(deviceFile, opts, caps, logger); err != nil {
		_ = deviceFile.Close()
		return nil, err
	}

	if err := createUsbDevice(deviceFile, buildUserDev(opts, caps)); err != nil {
		_ = deviceFile.Close()
		return nil, err
	}

	logger.Info().Str("name", opts.Name).Bool("forward", opts.Forward).Msg("virtual device created")
	return &Device{file: deviceFile, name: opts.Name, log: logger}, nil
}

func (d *Device) Name() string {
	return d.name
}

// Emit はイベント列の末尾にSYN_REPORTを付け、一回のwriteで書き込む
func (d *Device) Emit(events []event.Event) error {
	if err := writeFrame(d.file, events); err != nil {
		return err
	}
	for _, ev := range events {
		d.log.Trace().Stringer("event", ev).Msg("emit")
	}
	return nil
}

func (d *Device) Close() error {
	_ = releaseDevice(d.file)
	return d.file.Close()
}

// register はイベント種別とコードをuinputに登録する
func register(deviceFile *os.File, opts Options, caps device.Capabilities, logger *zerolog.Logger) error {
	// キー入力イベント(EV_KEY)を登録する
	if err := registerDevice(deviceFile, event.Key); err != nil {
		return fmt.Errorf("failed to register EV_KEY: %w", err)
	}
	for _, code := range keySet(opts, caps) {
		if err := utils.IOCtl(deviceFile, consts.SetKeyBit, uintptr(code)); err != nil {
			return fmt.Errorf("failed to register key %#x: %w", code, err)
		}
	}

	if !opts.Forward {
		return nil
	}

	axes := axisSet(caps)
	if len(axes) > 0 {
		if err := registerDevice(deviceFile, event.Abs); err != nil {
			return fmt.Errorf("failed to register EV_ABS: %w", err)
		}
		for _, axis := range axes {
			if err := utils.IOCtl(deviceFile, consts.SetAbsBit, uintptr(axis)); err != nil {
				return fmt.Errorf("failed to register axis %s: %w", event.CodeName(event.Abs, axis), err)
			}
			logger.Debug().Str("axis", event.CodeName(event.Abs, axis)).Interface("info", caps.Abs[axis]).Msg("mirror axis")
		}
	}
	for axis := range caps.Abs {
		if !slices.Contains(forwardedAxes, axis) {
			logger.Warn().Str("axis", event.CodeName(event.Abs, axis)).Msg("skipping axis")
		}
	}

	if len(caps.Msc) > 0 {
		if err := registerDevice(deviceFile, event.Msc); err != nil {
			return fmt.Errorf("failed to register EV_MSC: %w", err)
		}
		for _, code := range caps.Msc {
			if err := utils.IOCtl(deviceFile, consts.SetMscBit, uintptr(code)); err != nil {
				return fmt.Errorf("failed to register msc %#x: %w", code, err)
			}
		}
	}

	for _, prop := range caps.Props {
		if err := utils.IOCtl(deviceFile, consts.SetPropBit, uintptr(prop)); err != nil {
			return fmt.Errorf("failed to set property %#x: %w", prop, err)
		}
	}
	return nil
}

// keySet は登録するキーコードを重複なしの昇順で返す
// 物理デバイスのキー、追加指定のキー、マウスボタン一式
func keySet(opts Options, caps device.Capabilities) []uint16 {
	keys := slices.Clone(caps.Keys)
	keys = append(keys, opts.Keys...)
	for code := uint16(event.BtnMisc); code <= event.BtnMisc+9; code++ {
		keys = append(keys, code)
	}
	for code := uint16(event.BtnLeft); code <= event.BtnTask; code++ {
		keys = append(keys, code)
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

// axisSet は物理デバイスが持つ軸のうち複製するものを返す
func axisSet(caps device.Capabilities) []uint16 {
	var axes []uint16
	for _, axis := range forwardedAxes {
		if _, ok := caps.Abs[axis]; ok {
			axes = append(axes, axis)
		}
	}
	slices.Sort(axes)
	return axes
}

func buildUserDev(opts Options, caps device.Capabilities) types.UserDev {
	dev := types.UserDev{
		Name: toUinputName([]byte(opts.Name)),
		ID:   opts.ID,
	}
	if !opts.Forward {
		return dev
	}
	for _, axis := range axisSet(caps) {
		info := caps.Abs[axis]
		dev.Absmin[axis] = info.Minimum
		dev.Absmax[axis] = info.Maximum
		dev.Absfuzz[axis] = info.Fuzz
		dev.Absflat[axis] = info.Flat
	}
	return dev
}

// デバイスファイルを作成する
func createDeviceFile(path string) (*os.File, error) {
	deviceFile, err := os.OpenFile(path, syscall.O_WRONLY|syscall.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w (is the uinput module loaded?)", path, err)
	}
	return deviceFile, nil
}

// デバイスを解放する
func releaseDevice(deviceFile *os.File) error {
	return utils.IOCtl(deviceFile, consts.DevDestroy, 0)
}

// デバイスを登録する
func registerDevice(deviceFile *os.File, evType uint16) error {
	return utils.IOCtl(deviceFile, consts.SetEvBit, uintptr(evType))
}

// USBデバイスを作成する
func createUsbDevice(deviceFile *os.File, dev types.UserDev) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.NativeEndian, dev); err != nil {
		return fmt.Errorf("failed to encode uinput_user_dev: %w", err)
	}
	if _, err := deviceFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write uinput_user_dev: %w", err)
	}
	if err := utils.IOCtl(deviceFile, consts.DevCreate, 0); err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	return nil
}

// writeFrame はイベント列とSYN_REPORTを一回のWriteで書き込む
func writeFrame(w io.Writer, events []event.Event) error {
	frame := make([]event.Event, 0, len(events)+1)
	frame = append(frame, events...)
	frame = append(frame, event.New(event.Syn, event.SynReport, 0))

	buf, err := event.Encode(frame)
	if err != nil {
		return err
	}
	n, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("failed to write events: %w", err)
	}
	if n != len(buf) {
		return errors.New("short write to uinput device")
	}
	return nil
}

// 名前をuinput用の固定長配列に変換する
func toUinputName(name []byte) (uinputName [consts.MaxNameSize]byte) {
	var fixedSizeName [consts.MaxNameSize]byte
	copy(fixedSizeName[:len(fixedSizeName)-1], name)
	return fixedSizeName
}
