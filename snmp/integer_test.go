package snmp

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestSignedIntRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    int64
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"minusOne", -1, []byte{0xff}},
		{"onetwentyseven", 127, []byte{0x7f}},
		{"onetwentyeight", 128, []byte{0x00, 0x80}},
		{"minusOneTwentyEight", -128, []byte{0x80}},
		{"minusOneTwentyNine", -129, []byte{0xff, 0x7f}},
		{"maxInt32", 2147483647, []byte{0x7f, 0xff, 0xff, 0xff}},
		{"minInt32", -2147483648, []byte{0x80, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, len(tt.want), signedIntLen(tt.v))
			assert.Equal(t, tt.want, encodeSignedInt(tt.v))

			got, err := decodeSignedInt(tt.want)
			assert.NoError(t, err)
			assert.Equal(t, tt.v, got)
		})
	}
}

func TestDecodeSignedIntRejectsEmpty(t *testing.T) {
	_, err := decodeSignedInt(nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestUnsignedIntRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    uint64
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"twoFiveFive", 255, []byte{0x00, 0xff}},
		{"twoFiveSix", 256, []byte{0x01, 0x00}},
		{"oneTwentySeven", 127, []byte{0x7f}},
		{"oneTwentyEight", 128, []byte{0x00, 0x80}},
		{"maxUint32", 4294967295, []byte{0x00, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, len(tt.want), unsignedIntLen(tt.v))
			assert.Equal(t, tt.want, encodeUnsignedInt(tt.v))

			got, err := decodeUnsignedInt(tt.want, 5)
			assert.NoError(t, err)
			assert.Equal(t, tt.v, got)
		})
	}
}

func TestDecodeUnsignedIntRejectsOverflow(t *testing.T) {
	_, err := decodeUnsignedInt([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, 5)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeUnsignedIntRejectsEmpty(t *testing.T) {
	_, err := decodeUnsignedInt(nil, 5)
	assert.Error(t, err)
}
