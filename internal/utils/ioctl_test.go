package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIOCEncoding(t *testing.T) {
	// EVIOCGABS(ABS_X) = _IOR('E', 0x40, struct input_absinfo)
	assert.Equal(t, uintptr(0x80184540), IOR('E', 0x40, 24))
	// EVIOCGKEY(96)
	assert.Equal(t, uintptr(0x80604518), IOR('E', 0x18, 96))
}

func TestBits(t *testing.T) {
	bits := []byte{0b0000_0101, 0, 0b1000_0000}
	assert.True(t, TestBit(bits, 0))
	assert.False(t, TestBit(bits, 1))
	assert.True(t, TestBit(bits, 2))
	assert.True(t, TestBit(bits, 23))
	assert.False(t, TestBit(bits, 200))
	assert.Equal(t, []int{0, 2, 23}, SetBits(bits, 30))
}
