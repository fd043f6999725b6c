package device

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/char5742/stylus-remap/internal/consts"
	"github.com/char5742/stylus-remap/internal/event"
	"github.com/char5742/stylus-remap/internal/utils"
)

// 一回のreadで受け取る最大イベント数
const readBatch = 64

var ErrNotStylus = errors.New("device does not report BTN_TOOL_PEN")

// Device は物理入力デバイス（/dev/input/eventN）
type Device struct {
	file    *os.File
	path    string
	grabbed bool
	buf     []byte
}

// Open は指定されたパスのデバイスを読み込み専用で開く
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open device file: %w", err)
	}
	return &Device{
		file: f,
		path: path,
		buf:  make([]byte, readBatch*event.Size),
	}, nil
}

func (d *Device) Path() string {
	return d.path
}

// Name はカーネルが報告するデバイス名を返す
func (d *Device) Name() (string, error) {
	buf := make([]byte, 256)
	req := utils.IOR(consts.EvdevType, consts.NrName, uint32(len(buf)))
	if err := utils.IOCtlPtr(d.file, req, unsafe.Pointer(&buf[0])); err != nil {
		return "", fmt.Errorf("failed to read device name: %w", err)
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// Grab はデバイスを専有し、他のプロセスにイベントが届かないようにする
func (d *Device) Grab() error {
	if d.grabbed {
		return nil
	}
	if err := utils.IOCtl(d.file, consts.EVIOCGRAB, 1); err != nil {
		return fmt.Errorf("failed to grab device: %w", err)
	}
	d.grabbed = true
	return nil
}

// Release はデバイスの専有を解除する
func (d *Device) Release() error {
	if !d.grabbed {
		return nil
	}
	if err := utils.IOCtl(d.file, consts.EVIOCGRAB, 0); err != nil {
		return fmt.Errorf("failed to release device: %w", err)
	}
	d.grabbed = false
	return nil
}

func (d *Device) Close() error {
	_ = d.Release()
	return d.file.Close()
}

// FetchEvents は次のイベントが届くまでブロックし、
// 一回のreadで得られたイベントを受信順に返す
func (d *Device) FetchEvents() ([]event.Event, error) {
	n, err := d.file.Read(d.buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return event.Decode(d.buf[:n])
}

// PressedKeys は現在押されているキーの一覧をカーネルから取得する
func (d *Device) PressedKeys() ([]uint16, error) {
	bits := make([]byte, event.KeyMax/8+1)
	req := utils.IOR(consts.EvdevType, consts.NrKey, uint32(len(bits)))
	if err := utils.IOCtlPtr(d.file, req, unsafe.Pointer(&bits[0])); err != nil {
		return nil, fmt.Errorf("failed to read key state: %w", err)
	}
	return toCodes(utils.SetBits(bits, event.KeyMax)), nil
}

func toCodes(bits []int) []uint16 {
	codes := make([]uint16, len(bits))
	for i, b := range bits {
		codes[i] = uint16(b)
	}
	return codes
}
