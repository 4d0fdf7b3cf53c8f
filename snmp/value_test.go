package snmp

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	buf := make([]byte, v.EncodedLen())
	n := v.Encode(buf, 0)
	assert.Equal(t, len(buf), n)

	got, offset, err := Parse(buf, 0)
	assert.NoError(t, err)
	assert.Equal(t, n, offset)
	return got
}

func TestPrimitiveRoundTrips(t *testing.T) {
	assert.Equal(t, Boolean(true), roundTrip(t, Boolean(true)))
	assert.Equal(t, Boolean(false), roundTrip(t, Boolean(false)))
	assert.Equal(t, Integer(-129), roundTrip(t, Integer(-129)))
	assert.Equal(t, OctetString("public"), roundTrip(t, OctetString("public")))
	assert.Equal(t, Null{}, roundTrip(t, Null{}))
	assert.Equal(t, Counter32(223127307), roundTrip(t, Counter32(223127307)))
	assert.Equal(t, Gauge32(871591), roundTrip(t, Gauge32(871591)))
	assert.Equal(t, TimeTicks(2322054929), roundTrip(t, TimeTicks(2322054929)))
	assert.Equal(t, Opaque([]byte{0xff, 0xfe, 0xfd}), roundTrip(t, Opaque([]byte{0xff, 0xfe, 0xfd})))
	assert.Equal(t, Counter64(13387907621), roundTrip(t, Counter64(13387907621)))
	assert.Equal(t, Float(3.5), roundTrip(t, Float(3.5)))
	assert.Equal(t, NoSuchObject{}, roundTrip(t, NoSuchObject{}))
	assert.Equal(t, NoSuchInstance{}, roundTrip(t, NoSuchInstance{}))
	assert.Equal(t, EndOfMIBView{}, roundTrip(t, EndOfMIBView{}))
}

func TestIPAddressRoundTripAndString(t *testing.T) {
	a := IPAddress{10, 11, 12, 13}
	got := roundTrip(t, a)
	assert.Equal(t, a, got)
	assert.Equal(t, "10.11.12.13", a.String())
}

func TestParseRejectsUnknownTag(t *testing.T) {
	_, _, err := Parse([]byte{0xff, 0x00}, 0)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseRejectsDeclaredLengthExceedingInput(t *testing.T) {
	_, _, err := Parse([]byte{TagInteger, 0x05, 0x01}, 0)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseRejectsTruncatedTag(t *testing.T) {
	_, _, err := Parse([]byte{}, 0)
	assert.Error(t, err)
}

func TestSequenceRoundTrip(t *testing.T) {
	seq := Sequence{Integer(1), OctetString("public")}
	got := roundTrip(t, seq)
	gotSeq, ok := got.(Sequence)
	assert.True(t, ok)
	assert.Equal(t, seq, gotSeq)
}

func TestBooleanRejectsWrongPayloadLength(t *testing.T) {
	_, err := decodeBoolean([]byte{0x01, 0x02})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNullRejectsNonEmptyPayload(t *testing.T) {
	_, _, err := Parse([]byte{TagNull, 0x01, 0x00}, 0)
	assert.Error(t, err)
}

func TestIPAddressRejectsWrongPayloadLength(t *testing.T) {
	_, err := decodeIPAddress([]byte{1, 2, 3})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFloatRejectsWrongPayloadLength(t *testing.T) {
	_, err := decodeFloat([]byte{1, 2, 3})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}
