package consts

// UIInput デバイスの定数（uinput.hから）
const (
	UinputPath  = "/dev/uinput"
	MaxNameSize = 80         // デバイス名の最大サイズ
	DevCreate   = 0x5501     // デバイス作成用のIOCTL
	DevDestroy  = 0x5502     // デバイス破棄用のIOCTL
	SetEvBit    = 0x40045564 // イベントビット設定用のIOCTL
	SetKeyBit   = 0x40045565 // キービット設定用のIOCTL
	SetAbsBit   = 0x40045567 // 絶対座標ビット設定用のIOCTL
	SetMscBit   = 0x40045568 // MSCビット設定用のIOCTL
	SetPropBit  = 0x4004556e // プロパティビット設定用のIOCTL
	BusVirtual  = 0x06       // 仮想バスタイプ
)

// その他のデバイス制御用定数
const (
	AbsSize   = 64         // 絶対座標の配列サイズ
	EVIOCGRAB = 0x40044590 // デバイスの排他制御用のIOCTL
)

// evdev の読み出し用IOCTL番号（'E' と番号、サイズから組み立てる）
const (
	EvdevType = 'E'
	NrName    = 0x06 // EVIOCGNAME
	NrProp    = 0x09 // EVIOCGPROP
	NrKey     = 0x18 // EVIOCGKEY
	NrBit     = 0x20 // EVIOCGBIT(ev) = 0x20 + ev
	NrAbs     = 0x40 // EVIOCGABS(abs) = 0x40 + abs
)
