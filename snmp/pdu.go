package snmp

import "github.com/pkg/errors"

// PDU is the constructed value carried as the third field of a
// Message. Its tag selects one of the eight recognised kinds; the tag
// also selects which of the two body shapes below applies.
//
// For every kind except the v1 Trap, the body is RequestID,
// ErrorStatus, ErrorIndex, VarBinds (GetBulkRequest reuses ErrorStatus
// as NonRepeaters and ErrorIndex as MaxRepetitions — same wire shape,
// different field names at the call site). For the v1 Trap, the body
// is Enterprise, AgentAddr, GenericTrap, SpecificTrap, Timestamp,
// VarBinds.
type PDU struct {
	PDUTag byte

	// Standard body, valid for every PDUTag except TagTrapV1.
	RequestID   int32
	ErrorStatus int
	ErrorIndex  int
	VarBinds    VarBindList

	// v1 Trap body, valid only when PDUTag == TagTrapV1.
	Enterprise   ObjectIdentifier
	AgentAddr    IPAddress
	GenericTrap  int
	SpecificTrap int
	Timestamp    TimeTicks
}

func (p *PDU) Tag() byte { return p.PDUTag }

func (p *PDU) EncodedLen() int {
	return leafEncodedLen(p.payloadLen())
}

func (p *PDU) Encode(buf []byte, offset int) int {
	buf[offset] = p.PDUTag
	offset++
	offset = encodeLength(buf, offset, p.payloadLen())
	for _, child := range p.children() {
		offset = child.Encode(buf, offset)
	}
	return offset
}

func (p *PDU) payloadLen() int {
	n := 0
	for _, child := range p.children() {
		n += child.EncodedLen()
	}
	return n
}

func (p *PDU) children() []Value {
	if p.PDUTag == TagTrapV1 {
		return []Value{
			p.Enterprise,
			p.AgentAddr,
			Integer(p.GenericTrap),
			Integer(p.SpecificTrap),
			p.Timestamp,
			p.VarBinds,
		}
	}
	return []Value{
		Integer(p.RequestID),
		Integer(p.ErrorStatus),
		Integer(p.ErrorIndex),
		p.VarBinds,
	}
}

// decodePDU parses a PDU body from payload, given the tag already read
// from the enclosing header. It validates the standard-body field
// count/types per the grammar-validation policy: RequestID,
// ErrorStatus and ErrorIndex must be Integers, ErrorStatus must fit the
// documented error enumeration range, and ErrorIndex must fit in one
// unsigned byte.
func decodePDU(tag byte, payload []byte) (*PDU, error) {
	if tag == TagTrapV1 {
		return decodeTrapV1PDU(payload)
	}
	return decodeStandardPDU(tag, payload)
}

func decodeStandardPDU(tag byte, payload []byte) (*PDU, error) {
	fields, offset, err := parseFixedFields(payload, 3)
	if err != nil {
		return nil, err
	}

	requestID, ok := fields[0].(Integer)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "PDU request-id must be an Integer")
	}
	errorStatus, ok := fields[1].(Integer)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "PDU error-status must be an Integer")
	}
	errorIndex, ok := fields[2].(Integer)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "PDU error-index must be an Integer")
	}

	// GetBulkRequest reinterprets these two fields as non-repeaters and
	// max-repetitions, which are not bounded by the error enumeration;
	// every other kind must respect the documented ranges.
	if tag != TagGetBulkRequest {
		if errorStatus < 0 || errorStatus > maxErrorStatus {
			return nil, errors.Wrapf(ErrGrammarViolation, "error-status %d out of range", errorStatus)
		}
		if errorIndex < 0 || errorIndex > 255 {
			return nil, errors.Wrapf(ErrGrammarViolation, "error-index %d does not fit in one unsigned byte", errorIndex)
		}
	}

	if offset != len(payload) && payload[offset] != TagSequence {
		return nil, errors.Wrap(ErrGrammarViolation, "PDU varbind-list must be a Sequence")
	}
	varbinds, err := decodeTrailingVarBindList(payload, offset)
	if err != nil {
		return nil, err
	}

	return &PDU{
		PDUTag:      tag,
		RequestID:   int32(requestID),
		ErrorStatus: int(errorStatus),
		ErrorIndex:  int(errorIndex),
		VarBinds:    varbinds,
	}, nil
}

func decodeTrapV1PDU(payload []byte) (*PDU, error) {
	fields, offset, err := parseFixedFields(payload, 5)
	if err != nil {
		return nil, err
	}

	enterprise, ok := fields[0].(ObjectIdentifier)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "trap enterprise must be an ObjectIdentifier")
	}
	agentAddr, ok := fields[1].(IPAddress)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "trap agent-addr must be an IPAddress")
	}
	genericTrap, ok := fields[2].(Integer)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "trap generic-trap must be an Integer")
	}
	if genericTrap < 0 || genericTrap > 6 {
		return nil, errors.Wrapf(ErrGrammarViolation, "generic-trap %d out of range 0..6", genericTrap)
	}
	specificTrap, ok := fields[3].(Integer)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "trap specific-trap must be an Integer")
	}
	timestamp, ok := fields[4].(TimeTicks)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "trap timestamp must be a TimeTicks")
	}

	varbinds, err := decodeTrailingVarBindList(payload, offset)
	if err != nil {
		return nil, err
	}

	return &PDU{
		PDUTag:       TagTrapV1,
		Enterprise:   enterprise,
		AgentAddr:    agentAddr,
		GenericTrap:  int(genericTrap),
		SpecificTrap: int(specificTrap),
		Timestamp:    timestamp,
		VarBinds:     varbinds,
	}, nil
}

// parseFixedFields parses exactly count leading values from payload,
// returning them along with the offset immediately after the last one
// consumed.
func parseFixedFields(payload []byte, count int) ([]Value, int, error) {
	fields := make([]Value, 0, count)
	offset := 0
	for i := 0; i < count; i++ {
		if offset >= len(payload) {
			return nil, 0, errors.Wrapf(ErrGrammarViolation, "PDU body has only %d of %d required fields", i, count)
		}
		v, next, err := Parse(payload, offset)
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, v)
		offset = next
	}
	return fields, offset, nil
}

// decodeTrailingVarBindList parses the VarBindList Sequence starting
// at offset, requiring that it is the only thing left in payload.
func decodeTrailingVarBindList(payload []byte, offset int) (VarBindList, error) {
	if offset >= len(payload) {
		return nil, errors.Wrap(ErrGrammarViolation, "PDU is missing its varbind-list")
	}
	if payload[offset] != TagSequence {
		return nil, errors.Wrap(ErrGrammarViolation, "PDU varbind-list must be a Sequence")
	}
	payloadLen, valueOffset, err := decodeLength(payload, offset+1)
	if err != nil {
		return nil, err
	}
	if valueOffset+payloadLen != len(payload) {
		return nil, errors.Wrap(ErrGrammarViolation, "PDU has trailing data after its varbind-list")
	}
	return decodeVarBindList(payload[valueOffset : valueOffset+payloadLen])
}
