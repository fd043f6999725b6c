package utils

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// IOCtl はファイルに対して値渡しのioctlを発行する
func IOCtl(f *os.File, request uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), request, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// IOCtlPtr はバッファや構造体へのポインタを渡すioctlを発行する
func IOCtlPtr(f *os.File, request uintptr, ptr unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), request, uintptr(ptr))
	if errno != 0 {
		return errno
	}
	return nil
}

// ioctl番号のエンコード（Linuxの_IOCマクロ）
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocRead = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

// IOR は読み出し方向のioctl番号を返す
func IOR(typ, nr, size uint32) uintptr {
	return ioc(iocRead, typ, nr, size)
}

// TestBit はカーネルが返すビットマスクの指定ビットを調べる
func TestBit(bits []byte, n int) bool {
	if n/8 >= len(bits) {
		return false
	}
	return bits[n/8]&(1<<(n%8)) != 0
}

// SetBits はビットマスクで立っているビット番号を列挙する
func SetBits(bits []byte, max int) []int {
	var out []int
	for n := 0; n <= max; n++ {
		if TestBit(bits, n) {
			out = append(out, n)
		}
	}
	return out
}
