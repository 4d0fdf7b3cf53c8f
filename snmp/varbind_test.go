package snmp

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestVarBindListRoundTrip(t *testing.T) {
	vbl := VarBindList{
		{Name: ObjectIdentifier{1, 3, 6, 1, 2, 1, 1, 5, 0}, Value: OctetString("probe1")},
		{Name: ObjectIdentifier{1, 3, 6, 1, 2, 1, 1, 3, 0}, Value: TimeTicks(12345)},
	}

	buf := make([]byte, vbl.EncodedLen())
	n := vbl.Encode(buf, 0)
	assert.Equal(t, len(buf), n)

	got, err := decodeVarBindList(buf[2:n])
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, vbl[0].Name.Equal(got[0].Name))
	assert.Equal(t, vbl[0].Value, got[0].Value)
	assert.True(t, vbl[1].Name.Equal(got[1].Name))
	assert.Equal(t, vbl[1].Value, got[1].Value)
}

func TestVarBindListRejectsNonSequenceEntry(t *testing.T) {
	_, err := decodeVarBindList([]byte{TagInteger, 0x01, 0x00})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrGrammarViolation)
}

func TestVarBindListRejectsNameNotOID(t *testing.T) {
	entry := Sequence{Integer(1), Integer(2)}
	buf := make([]byte, entry.EncodedLen())
	entry.Encode(buf, 0)

	_, err := decodeVarBindList(buf)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrGrammarViolation)
}

func TestVarBindListEmpty(t *testing.T) {
	var vbl VarBindList
	buf := make([]byte, vbl.EncodedLen())
	vbl.Encode(buf, 0)
	assert.Equal(t, []byte{TagSequence, 0x00}, buf)

	got, err := decodeVarBindList(nil)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
