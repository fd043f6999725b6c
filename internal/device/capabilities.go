package device

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/char5742/stylus-remap/internal/consts"
	"github.com/char5742/stylus-remap/internal/event"
	"github.com/char5742/stylus-remap/internal/types"
	"github.com/char5742/stylus-remap/internal/utils"
)

// Capabilities はデバイスが報告するイベントの種類
type Capabilities struct {
	Keys  []uint16
	Abs   map[uint16]types.AbsInfo
	Msc   []uint16
	Props []uint16
}

// HasKey はキーコードを報告するかどうか
func (c Capabilities) HasKey(code uint16) bool {
	return slices.Contains(c.Keys, code)
}

// IsStylus はペンタブレットとして扱えるかどうか
func (c Capabilities) IsStylus() bool {
	return c.HasKey(event.BtnToolPen)
}

// Capabilities はEVIOCGBIT、EVIOCGPROP、EVIOCGABSで能力を問い合わせる
func (d *Device) Capabilities() (Capabilities, error) {
	var caps Capabilities

	keys, err := d.eventBits(event.Key, event.KeyMax)
	if err != nil {
		return caps, err
	}
	caps.Keys = toCodes(keys)

	msc, err := d.eventBits(event.Msc, event.MscMax)
	if err != nil {
		return caps, err
	}
	caps.Msc = toCodes(msc)

	props, err := d.bits(utils.IOR(consts.EvdevType, consts.NrProp, event.PropMax/8+1), event.PropMax)
	if err != nil {
		return caps, fmt.Errorf("failed to read input properties: %w", err)
	}
	caps.Props = toCodes(props)

	axes, err := d.eventBits(event.Abs, event.AbsMax)
	if err != nil {
		return caps, err
	}
	caps.Abs = make(map[uint16]types.AbsInfo, len(axes))
	for _, axis := range axes {
		info, err := d.absInfo(axis)
		if err != nil {
			return caps, err
		}
		caps.Abs[uint16(axis)] = info
	}

	return caps, nil
}

func (d *Device) eventBits(evType uint16, max int) ([]int, error) {
	req := utils.IOR(consts.EvdevType, consts.NrBit+uint32(evType), uint32(max/8+1))
	bits, err := d.bits(req, max)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s capabilities: %w", event.TypeName(evType), err)
	}
	return bits, nil
}

func (d *Device) bits(req uintptr, max int) ([]int, error) {
	buf := make([]byte, max/8+1)
	if err := utils.IOCtlPtr(d.file, req, unsafe.Pointer(&buf[0])); err != nil {
		return nil, err
	}
	return utils.SetBits(buf, max), nil
}

func (d *Device) absInfo(axis int) (types.AbsInfo, error) {
	var info types.AbsInfo
	req := utils.IOR(consts.EvdevType, consts.NrAbs+uint32(axis), uint32(unsafe.Sizeof(info)))
	if err := utils.IOCtlPtr(d.file, req, unsafe.Pointer(&info)); err != nil {
		return info, fmt.Errorf("failed to read abs info for %s: %w", event.CodeName(event.Abs, uint16(axis)), err)
	}
	return info, nil
}
