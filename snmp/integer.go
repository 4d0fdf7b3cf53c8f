package snmp

import "github.com/pkg/errors"

// signedIntLen returns the length, in octets, of the minimal
// two's-complement big-endian encoding of v.
func signedIntLen(v int64) int {
	n := 1
	for v > 127 || v < -128 {
		v >>= 8
		n++
	}
	return n
}

// encodeSignedInt returns the minimal two's-complement big-endian
// encoding of v, sign-extended by exactly one octet when the natural
// byte count would otherwise flip the sign.
func encodeSignedInt(v int64) []byte {
	n := signedIntLen(v)
	buf := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	return buf
}

// decodeSignedInt parses a minimal two's-complement big-endian payload,
// sign-extending from the first octet.
func decodeSignedInt(payload []byte) (int64, error) {
	if len(payload) == 0 {
		return 0, errors.Wrap(ErrMalformed, "empty integer payload")
	}
	if len(payload) > 8 {
		return 0, errors.Wrap(ErrMalformed, "integer payload exceeds 64 bits")
	}
	var v int64
	if payload[0]&0x80 != 0 {
		v = -1
	}
	for _, b := range payload {
		v = v<<8 | int64(b)
	}
	return v, nil
}

// unsignedRawLen returns the number of big-endian octets needed to hold
// v, ignoring the leading-zero-pad rule.
func unsignedRawLen(v uint64) int {
	n := 1
	for v > 0xFF {
		v >>= 8
		n++
	}
	return n
}

// unsignedIntLen returns the length, in octets, of the minimal unsigned
// BER encoding of v: the raw byte count, plus one leading 0x00 pad
// octet when the top byte's high bit would otherwise be set.
func unsignedIntLen(v uint64) int {
	n := unsignedRawLen(v)
	topByte := byte(v >> uint((n-1)*8))
	if topByte&0x80 != 0 {
		n++
	}
	return n
}

// encodeUnsignedInt returns the minimal unsigned big-endian encoding of
// v, preceded by 0x00 when the top byte's high bit would otherwise be
// mistaken for a sign bit.
func encodeUnsignedInt(v uint64) []byte {
	n := unsignedRawLen(v)
	pad := 0
	topByte := byte(v >> uint((n-1)*8))
	if topByte&0x80 != 0 {
		pad = 1
	}
	buf := make([]byte, n+pad)
	for i := n - 1; i >= 0; i-- {
		buf[pad+i] = byte(v)
		v >>= 8
	}
	return buf
}

// decodeUnsignedInt parses an unsigned big-endian payload without sign
// extension, rejecting payloads longer than maxBytes (the type's
// natural width plus one allowance for a leading zero pad octet).
func decodeUnsignedInt(payload []byte, maxBytes int) (uint64, error) {
	if len(payload) == 0 {
		return 0, errors.Wrap(ErrMalformed, "empty unsigned integer payload")
	}
	if len(payload) > maxBytes {
		return 0, errors.Wrap(ErrMalformed, "unsigned integer payload overflows its type width")
	}
	var v uint64
	for _, b := range payload {
		v = v<<8 | uint64(b)
	}
	return v, nil
}
