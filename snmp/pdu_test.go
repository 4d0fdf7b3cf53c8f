package snmp

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestStandardPDURoundTrip(t *testing.T) {
	pdu := &PDU{
		PDUTag:      TagGetRequest,
		RequestID:   1033571846,
		ErrorStatus: ErrNoError,
		ErrorIndex:  0,
		VarBinds: VarBindList{
			{Name: ObjectIdentifier{1, 3, 6, 1, 2, 1, 1, 5, 0}, Value: Null{}},
		},
	}

	buf := make([]byte, pdu.EncodedLen())
	n := pdu.Encode(buf, 0)
	assert.Equal(t, len(buf), n)

	got, err := decodePDU(TagGetRequest, buf[2:n])
	assert.NoError(t, err)
	assert.Equal(t, pdu.RequestID, got.RequestID)
	assert.Equal(t, pdu.ErrorStatus, got.ErrorStatus)
	assert.Equal(t, pdu.ErrorIndex, got.ErrorIndex)
	assert.Len(t, got.VarBinds, 1)
}

func TestStandardPDURejectsOutOfRangeErrorStatus(t *testing.T) {
	payload := Sequence{Integer(1), Integer(99), Integer(0), VarBindList{}}
	buf := make([]byte, payload.EncodedLen())
	payload.Encode(buf, 0)

	_, err := decodeStandardPDU(TagGetRequest, buf[2:])
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrGrammarViolation)
}

func TestGetBulkRequestAllowsOutOfRangeReinterpretedFields(t *testing.T) {
	// non-repeaters / max-repetitions are not bounded by the error
	// enumeration, unlike every other PDU kind.
	payload := Sequence{Integer(1), Integer(500), Integer(999), VarBindList{}}
	buf := make([]byte, payload.EncodedLen())
	payload.Encode(buf, 0)

	got, err := decodeStandardPDU(TagGetBulkRequest, buf[2:])
	assert.NoError(t, err)
	assert.Equal(t, 500, got.ErrorStatus)
	assert.Equal(t, 999, got.ErrorIndex)
}

func TestTrapV1PDURoundTrip(t *testing.T) {
	pdu := &PDU{
		PDUTag:       TagTrapV1,
		Enterprise:   ObjectIdentifier{1, 3, 6, 1, 1, 2, 3},
		AgentAddr:    IPAddress{10, 0, 0, 1},
		GenericTrap:  6,
		SpecificTrap: 123456,
		Timestamp:    TimeTicks(80777),
		VarBinds:     VarBindList{},
	}

	buf := make([]byte, pdu.EncodedLen())
	n := pdu.Encode(buf, 0)

	got, err := decodePDU(TagTrapV1, buf[2:n])
	assert.NoError(t, err)
	assert.True(t, pdu.Enterprise.Equal(got.Enterprise))
	assert.Equal(t, pdu.AgentAddr, got.AgentAddr)
	assert.Equal(t, pdu.GenericTrap, got.GenericTrap)
	assert.Equal(t, pdu.SpecificTrap, got.SpecificTrap)
	assert.Equal(t, pdu.Timestamp, got.Timestamp)
}

func TestTrapV1PDURejectsOutOfRangeGenericTrap(t *testing.T) {
	payload := Sequence{
		ObjectIdentifier{1, 3, 6, 1, 1, 2, 3},
		IPAddress{10, 0, 0, 1},
		Integer(7),
		Integer(0),
		TimeTicks(0),
		VarBindList{},
	}
	buf := make([]byte, payload.EncodedLen())
	payload.Encode(buf, 0)

	_, err := decodeTrapV1PDU(buf[2:])
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrGrammarViolation)
}

func TestDecodePDURejectsMissingFields(t *testing.T) {
	payload := Sequence{Integer(1)}
	buf := make([]byte, payload.EncodedLen())
	payload.Encode(buf, 0)

	_, err := decodeStandardPDU(TagGetRequest, buf[2:])
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrGrammarViolation)
}
