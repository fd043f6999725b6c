package event

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Size はカーネルの input_event 構造体のバイト数
// 64bit環境では24バイト、32bit環境では16バイトになる
var Size = binary.Size(Event{})

// Decode は read(2) で得たバッファをイベント列に変換する
func Decode(buf []byte) ([]Event, error) {
	if len(buf)%Size != 0 {
		return nil, fmt.Errorf("short input_event read: %d bytes is not a multiple of %d", len(buf), Size)
	}

	events := make([]Event, len(buf)/Size)
	if err := binary.Read(bytes.NewReader(buf), binary.NativeEndian, events); err != nil {
		return nil, fmt.Errorf("failed to decode input events: %w", err)
	}
	return events, nil
}

// Encode はイベント列を一回の write(2) で書き込めるバイト列にする
func Encode(events []Event) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, len(events)*Size))
	if err := binary.Write(buf, binary.NativeEndian, events); err != nil {
		return nil, fmt.Errorf("failed to encode input events: %w", err)
	}
	return buf.Bytes(), nil
}
