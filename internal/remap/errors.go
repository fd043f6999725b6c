package remap

import "fmt"

// DeviceError は物理デバイスまたは仮想デバイスの操作の失敗
// 取得時のエラーも出力時のエラーも致命的で、再試行しない
type DeviceError struct {
	Op   string // wait, open, query, grab, create, read, resync, emit
	Path string
	Err  error
}

func (e *DeviceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
