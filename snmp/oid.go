package snmp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ObjectIdentifier is an ordered sequence of subidentifiers, the
// canonical name for a managed object, e.g. 1.3.6.1.2.1.1.5.0.
type ObjectIdentifier []uint32

// ParseOID parses the dotted-decimal external representation of an
// object identifier, e.g. "1.3.6.1.2.1.1.5.0". It enforces the
// invariants the wire encoding relies on (Encode itself does not check
// them): at least two subidentifiers, a first subidentifier of 0, 1 or
// 2, and when the first is 0 or 1 the second must be less than 40.
func ParseOID(s string) (ObjectIdentifier, error) {
	parts := strings.Split(strings.Trim(s, "."), ".")
	if len(parts) < 2 {
		return nil, errors.Errorf("oid %q: must have at least two subidentifiers", s)
	}

	oid := make(ObjectIdentifier, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "oid %q: invalid subidentifier %q", s, p)
		}
		oid[i] = uint32(v)
	}

	if oid[0] > 2 {
		return nil, errors.Errorf("oid %q: first subidentifier must be 0, 1 or 2", s)
	}
	if oid[0] < 2 && oid[1] >= 40 {
		return nil, errors.Errorf("oid %q: second subidentifier must be less than 40", s)
	}
	return oid, nil
}

// String renders the object identifier in its canonical dotted-decimal
// form.
func (oid ObjectIdentifier) String() string {
	parts := make([]string, len(oid))
	for i, v := range oid {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether oid and other name the same object.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	if len(oid) != len(other) {
		return false
	}
	for i := range oid {
		if oid[i] != other[i] {
			return false
		}
	}
	return true
}

func (oid ObjectIdentifier) Tag() byte { return TagObjectIdentifier }

func (oid ObjectIdentifier) EncodedLen() int {
	payloadLen := oidPayloadLen(oid)
	return 1 + lengthFieldSize(payloadLen) + payloadLen
}

func (oid ObjectIdentifier) Encode(buf []byte, offset int) int {
	payloadLen := oidPayloadLen(oid)
	buf[offset] = TagObjectIdentifier
	offset++
	offset = encodeLength(buf, offset, payloadLen)
	return encodeOIDPayload(oid, buf, offset)
}

// oidPayloadLen returns the encoded length of the packed subidentifier
// payload, excluding tag and length field.
func oidPayloadLen(oid ObjectIdentifier) int {
	combinedFirst := 40*oid[0] + oid[1]
	n := subidLen(combinedFirst)
	for _, sub := range oid[2:] {
		n += subidLen(sub)
	}
	return n
}

func encodeOIDPayload(oid ObjectIdentifier, buf []byte, offset int) int {
	combinedFirst := 40*oid[0] + oid[1]
	offset = encodeSubid(buf, offset, combinedFirst)
	for _, sub := range oid[2:] {
		offset = encodeSubid(buf, offset, sub)
	}
	return offset
}

// subidLen returns the number of base-128 septets needed to encode v,
// at least one (a subidentifier of value 0 still emits a single 0x00
// octet).
func subidLen(v uint32) int {
	if v == 0 {
		return 1
	}
	n := 0
	for v > 0 {
		n++
		v >>= 7
	}
	return n
}

// encodeSubid writes v as a base-128, most-significant-septet-first
// sequence with the continuation bit set on every octet but the last.
func encodeSubid(buf []byte, offset int, v uint32) int {
	n := subidLen(v)
	for i := n - 1; i >= 0; i-- {
		b := byte((v >> uint(7*i)) & 0x7F)
		if i != 0 {
			b |= 0x80
		}
		buf[offset] = b
		offset++
	}
	return offset
}

// decodeOID parses a packed subidentifier payload into an
// ObjectIdentifier, recovering the first two subidentifiers from the
// combined leading value per X.690 §8.19.4 and rejecting any
// subidentifier whose accumulated value overflows 32 bits or whose
// continuation chain runs past the end of payload.
func decodeOID(payload []byte) (ObjectIdentifier, error) {
	if len(payload) == 0 {
		return nil, errors.Wrap(ErrMalformed, "empty object identifier payload")
	}

	combinedFirst, offset, err := decodeSubid(payload, 0)
	if err != nil {
		return nil, err
	}

	var a, b uint32
	if combinedFirst < 80 {
		a, b = combinedFirst/40, combinedFirst%40
	} else {
		a, b = 2, combinedFirst-80
	}
	oid := ObjectIdentifier{a, b}

	for offset < len(payload) {
		v, next, err := decodeSubid(payload, offset)
		if err != nil {
			return nil, err
		}
		oid = append(oid, v)
		offset = next
	}
	return oid, nil
}

func decodeSubid(payload []byte, offset int) (uint32, int, error) {
	var acc uint64
	start := offset
	for {
		if offset >= len(payload) {
			return 0, 0, errors.Wrap(ErrMalformed, "truncated object identifier subidentifier")
		}
		b := payload[offset]
		offset++
		acc = acc<<7 | uint64(b&0x7F)
		if acc > 0xFFFFFFFF {
			return 0, 0, errors.Wrap(ErrMalformed, "object identifier subidentifier overflows 32 bits")
		}
		if b&0x80 == 0 {
			break
		}
	}
	if offset == start {
		return 0, 0, errors.Wrap(ErrMalformed, "empty object identifier subidentifier")
	}
	return uint32(acc), offset, nil
}
