package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{name: "Nil", buf: nil},
		{name: "Empty", buf: []byte{}},
		{name: "SealedPayload", buf: []byte(`{"accessToken":"ya29.a0AfH6SM","fileId":"1Bxi","expiry":1700000240000}`)},
		{name: "KeyMaterial", buf: bytes.Repeat([]byte{0xA5}, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { Zero(tt.buf) })
			assert.Equal(t, make([]byte, len(tt.buf)), tt.buf)
		})
	}
}

func TestZero_OnlyTouchesItsWindow(t *testing.T) {
	buf := []byte("token:ya29|file:1Bxi")

	Zero(buf[6:10])

	assert.Equal(t, []byte("token:\x00\x00\x00\x00|file:1Bxi"), buf)
}
