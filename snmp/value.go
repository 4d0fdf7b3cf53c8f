package snmp

import (
	"encoding/binary"
	"math"
	"net"

	"github.com/pkg/errors"
)

// Value is satisfied by every BER value this codec knows how to encode
// and parse: the primitive leaves, the two constructed forms (Sequence
// and PDU), and the zero-length exception markers.
type Value interface {
	// Tag returns the value's BER type tag.
	Tag() byte

	// EncodedLen returns the total encoded size (tag + length field +
	// payload) without allocating an output buffer.
	EncodedLen() int

	// Encode writes tag || length || payload to buf starting at
	// offset, returning the offset immediately after the last byte
	// written.
	Encode(buf []byte, offset int) int
}

// Parse reads one BER value from buf starting at offset, returning the
// parsed value and the offset immediately after the last byte consumed.
// Unknown tags are rejected as ErrMalformed; this codec never falls
// back to an OctetString guess for an unrecognised tag.
func Parse(buf []byte, offset int) (Value, int, error) {
	if offset >= len(buf) {
		return nil, 0, errors.Wrap(ErrMalformed, "truncated value: missing tag octet")
	}
	tag := buf[offset]
	offset++

	payloadLen, offset, err := decodeLength(buf, offset)
	if err != nil {
		return nil, 0, err
	}
	if offset+payloadLen > len(buf) {
		return nil, 0, errors.Wrapf(ErrMalformed, "declared length %d for tag 0x%02x exceeds remaining input", payloadLen, tag)
	}
	payload := buf[offset : offset+payloadLen]
	end := offset + payloadLen

	switch {
	case tag == TagBoolean:
		v, err := decodeBoolean(payload)
		return v, end, err
	case tag == TagInteger:
		v, err := decodeIntegerValue(payload)
		return v, end, err
	case tag == TagOctetString:
		return OctetString(append([]byte(nil), payload...)), end, nil
	case tag == TagNull:
		if len(payload) != 0 {
			return nil, 0, errors.Wrap(ErrMalformed, "Null value must have zero-length payload")
		}
		return Null{}, end, nil
	case tag == TagObjectIdentifier:
		oid, err := decodeOID(payload)
		return oid, end, err
	case tag == TagSequence:
		children, err := parseChildren(payload)
		return Sequence(children), end, err
	case tag == TagIPAddress:
		v, err := decodeIPAddress(payload)
		return v, end, err
	case tag == TagCounter32:
		v, err := decodeUnsignedInt(payload, 5)
		return Counter32(v), end, err
	case tag == TagGauge32:
		v, err := decodeUnsignedInt(payload, 5)
		return Gauge32(v), end, err
	case tag == TagTimeTicks:
		v, err := decodeUnsignedInt(payload, 5)
		return TimeTicks(v), end, err
	case tag == TagOpaque:
		return Opaque(append([]byte(nil), payload...)), end, nil
	case tag == TagCounter64:
		v, err := decodeUnsignedInt(payload, 9)
		return Counter64(v), end, err
	case tag == TagFloat:
		v, err := decodeFloat(payload)
		return v, end, err
	case tag == TagNoSuchObject:
		if len(payload) != 0 {
			return nil, 0, errors.Wrap(ErrMalformed, "NoSuchObject marker must have zero-length payload")
		}
		return NoSuchObject{}, end, nil
	case tag == TagNoSuchInstance:
		if len(payload) != 0 {
			return nil, 0, errors.Wrap(ErrMalformed, "NoSuchInstance marker must have zero-length payload")
		}
		return NoSuchInstance{}, end, nil
	case tag == TagEndOfMIBView:
		if len(payload) != 0 {
			return nil, 0, errors.Wrap(ErrMalformed, "EndOfMIBView marker must have zero-length payload")
		}
		return EndOfMIBView{}, end, nil
	case isPDUTag(tag):
		pdu, err := decodePDU(tag, payload)
		return pdu, end, err
	default:
		return nil, 0, errors.Wrapf(ErrMalformed, "unrecognised BER tag 0x%02x", tag)
	}
}

// parseChildren repeatedly parses values from payload until it is
// exhausted, as required for the generic Sequence constructed type.
func parseChildren(payload []byte) ([]Value, error) {
	var children []Value
	offset := 0
	for offset < len(payload) {
		v, next, err := Parse(payload, offset)
		if err != nil {
			return nil, err
		}
		children = append(children, v)
		offset = next
	}
	return children, nil
}

// encodeLeaf writes tag || length || payload into buf at offset,
// returning the offset after the last byte written. Every fixed-shape
// primitive leaf (Boolean, OctetString, Null, IPAddress, Opaque, the
// exception markers) shares this shape.
func encodeLeaf(tag byte, payload []byte, buf []byte, offset int) int {
	buf[offset] = tag
	offset++
	offset = encodeLength(buf, offset, len(payload))
	copy(buf[offset:], payload)
	return offset + len(payload)
}

func leafEncodedLen(payloadLen int) int {
	return 1 + lengthFieldSize(payloadLen) + payloadLen
}

// Boolean is the BER Boolean primitive: a single octet, 0x00 for false,
// non-zero for true.
type Boolean bool

func (b Boolean) Tag() byte       { return TagBoolean }
func (b Boolean) EncodedLen() int { return leafEncodedLen(1) }
func (b Boolean) Encode(buf []byte, offset int) int {
	v := byte(0x00)
	if b {
		v = 0xFF
	}
	return encodeLeaf(TagBoolean, []byte{v}, buf, offset)
}

func decodeBoolean(payload []byte) (Boolean, error) {
	if len(payload) != 1 {
		return false, errors.Wrap(ErrMalformed, "Boolean payload must be exactly one octet")
	}
	return Boolean(payload[0] != 0x00), nil
}

// Integer is the BER Integer primitive, two's-complement big-endian,
// minimally encoded and sign-extended on decode.
type Integer int64

func (i Integer) Tag() byte       { return TagInteger }
func (i Integer) EncodedLen() int { return leafEncodedLen(signedIntLen(int64(i))) }
func (i Integer) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagInteger, encodeSignedInt(int64(i)), buf, offset)
}

func decodeIntegerValue(payload []byte) (Integer, error) {
	v, err := decodeSignedInt(payload)
	return Integer(v), err
}

// OctetString is a raw byte sequence; it may contain NUL bytes.
type OctetString []byte

func (s OctetString) Tag() byte       { return TagOctetString }
func (s OctetString) EncodedLen() int { return leafEncodedLen(len(s)) }
func (s OctetString) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagOctetString, s, buf, offset)
}

// Null carries no payload.
type Null struct{}

func (Null) Tag() byte       { return TagNull }
func (Null) EncodedLen() int { return leafEncodedLen(0) }
func (n Null) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagNull, nil, buf, offset)
}

// IPAddress holds exactly four octets, the BER application-class
// encoding of an IPv4 address.
type IPAddress [4]byte

func (a IPAddress) Tag() byte       { return TagIPAddress }
func (a IPAddress) EncodedLen() int { return leafEncodedLen(4) }
func (a IPAddress) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagIPAddress, a[:], buf, offset)
}

func (a IPAddress) String() string {
	return net.IP(a[:]).String()
}

func decodeIPAddress(payload []byte) (IPAddress, error) {
	var a IPAddress
	if len(payload) != 4 {
		return a, errors.Wrap(ErrMalformed, "IPAddress payload must be exactly four octets")
	}
	copy(a[:], payload)
	return a, nil
}

// Counter32 is an unsigned 32-bit monotonically increasing counter.
type Counter32 uint32

func (c Counter32) Tag() byte       { return TagCounter32 }
func (c Counter32) EncodedLen() int { return leafEncodedLen(unsignedIntLen(uint64(c))) }
func (c Counter32) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagCounter32, encodeUnsignedInt(uint64(c)), buf, offset)
}

// Gauge32 is an unsigned 32-bit value that may increase or decrease.
type Gauge32 uint32

func (g Gauge32) Tag() byte       { return TagGauge32 }
func (g Gauge32) EncodedLen() int { return leafEncodedLen(unsignedIntLen(uint64(g))) }
func (g Gauge32) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagGauge32, encodeUnsignedInt(uint64(g)), buf, offset)
}

// TimeTicks is an unsigned 32-bit count of hundredths of a second.
type TimeTicks uint32

func (t TimeTicks) Tag() byte       { return TagTimeTicks }
func (t TimeTicks) EncodedLen() int { return leafEncodedLen(unsignedIntLen(uint64(t))) }
func (t TimeTicks) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagTimeTicks, encodeUnsignedInt(uint64(t)), buf, offset)
}

// Opaque carries raw, application-defined bytes.
type Opaque []byte

func (o Opaque) Tag() byte       { return TagOpaque }
func (o Opaque) EncodedLen() int { return leafEncodedLen(len(o)) }
func (o Opaque) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagOpaque, o, buf, offset)
}

// Counter64 is an unsigned 64-bit monotonically increasing counter.
type Counter64 uint64

func (c Counter64) Tag() byte       { return TagCounter64 }
func (c Counter64) EncodedLen() int { return leafEncodedLen(unsignedIntLen(uint64(c))) }
func (c Counter64) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagCounter64, encodeUnsignedInt(uint64(c)), buf, offset)
}

// Float is an application-tagged IEEE-754 32-bit float.
type Float float32

func (f Float) Tag() byte       { return TagFloat }
func (f Float) EncodedLen() int { return leafEncodedLen(4) }
func (f Float) Encode(buf []byte, offset int) int {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, math.Float32bits(float32(f)))
	return encodeLeaf(TagFloat, payload, buf, offset)
}

func decodeFloat(payload []byte) (Float, error) {
	if len(payload) != 4 {
		return 0, errors.Wrap(ErrMalformed, "Float payload must be exactly four octets")
	}
	return Float(math.Float32frombits(binary.BigEndian.Uint32(payload))), nil
}

// NoSuchObject, NoSuchInstance and EndOfMIBView are the zero-length
// exception markers a GetResponse variable binding may carry in place
// of a value.
type (
	NoSuchObject   struct{}
	NoSuchInstance struct{}
	EndOfMIBView   struct{}
)

func (NoSuchObject) Tag() byte       { return TagNoSuchObject }
func (NoSuchObject) EncodedLen() int { return leafEncodedLen(0) }
func (n NoSuchObject) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagNoSuchObject, nil, buf, offset)
}

func (NoSuchInstance) Tag() byte       { return TagNoSuchInstance }
func (NoSuchInstance) EncodedLen() int { return leafEncodedLen(0) }
func (n NoSuchInstance) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagNoSuchInstance, nil, buf, offset)
}

func (EndOfMIBView) Tag() byte       { return TagEndOfMIBView }
func (EndOfMIBView) EncodedLen() int { return leafEncodedLen(0) }
func (n EndOfMIBView) Encode(buf []byte, offset int) int {
	return encodeLeaf(TagEndOfMIBView, nil, buf, offset)
}
