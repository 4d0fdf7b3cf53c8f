package snmp

import "github.com/pkg/errors"

// lengthFieldSize returns the number of bytes the BER length field for a
// payload of the given size occupies, without allocating: 1 byte for
// the short form (payloadLen <= 127), or 1+N bytes for the long form.
func lengthFieldSize(payloadLen int) int {
	if payloadLen <= 0x7F {
		return 1
	}
	n := 0
	for v := payloadLen; v > 0; v >>= 8 {
		n++
	}
	return 1 + n
}

// encodeLength writes the shortest valid BER length field for
// payloadLen into buf starting at offset, returning the position after
// the last byte written.
func encodeLength(buf []byte, offset, payloadLen int) int {
	if payloadLen <= 0x7F {
		buf[offset] = byte(payloadLen)
		return offset + 1
	}
	n := lengthFieldSize(payloadLen) - 1
	buf[offset] = 0x80 | byte(n)
	offset++
	for i := n - 1; i >= 0; i-- {
		buf[offset+i] = byte(payloadLen)
		payloadLen >>= 8
	}
	return offset + n
}

// decodeLength reads a BER length field from buf starting at offset. It
// accepts both short and long forms; long form with N=0 (indefinite
// length) is rejected, as is a length field that runs past the end of
// buf.
func decodeLength(buf []byte, offset int) (length, newOffset int, err error) {
	if offset >= len(buf) {
		return 0, 0, errors.Wrap(ErrMalformed, "truncated length field")
	}
	b := buf[offset]
	offset++
	if b&0x80 == 0 {
		return int(b), offset, nil
	}
	n := int(b & 0x7F)
	if n == 0 {
		return 0, 0, errors.Wrap(ErrMalformed, "indefinite length form is not supported")
	}
	if offset+n > len(buf) {
		return 0, 0, errors.Wrap(ErrMalformed, "truncated long-form length field")
	}
	for i := 0; i < n; i++ {
		length = length<<8 | int(buf[offset+i])
	}
	return length, offset + n, nil
}
