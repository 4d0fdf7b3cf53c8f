package snmp

import "github.com/pkg/errors"

// Message is the top-level SNMP envelope: version, community and a
// PDU, built and destroyed per the lifecycle spec.md §3.4 describes —
// an endpoint constructs one per received datagram, hands it to the
// registered handler by reference for the duration of the callback,
// and discards it afterwards.
type Message struct {
	version   int
	community string
	pdu       *PDU
}

// NewMessage constructs an empty message of the given version and PDU
// kind. It fails with ErrUnsupportedForVersion if the (version,
// pduTag) pair is not permitted by the v1/v2c PDU matrix.
func NewMessage(version int, community string, pduTag byte) (*Message, error) {
	if version != VersionV1 && version != VersionV2c {
		return nil, errors.Wrapf(ErrUnsupportedForVersion, "unknown SNMP version %d", version)
	}
	if !isPDUTag(pduTag) {
		return nil, errors.Wrapf(ErrGrammarViolation, "0x%02x is not a recognised PDU tag", pduTag)
	}
	if !pduAllowedForVersion(version, pduTag) {
		return nil, errors.Wrapf(ErrUnsupportedForVersion, "PDU tag 0x%02x is not valid for version %d", pduTag, version)
	}

	return &Message{
		version:   version,
		community: community,
		pdu:       &PDU{PDUTag: pduTag},
	}, nil
}

// ParseMessage performs a full BER parse of buf and validates the
// resulting tree against the SNMP message grammar.
func ParseMessage(buf []byte) (*Message, error) {
	v, offset, err := Parse(buf, 0)
	if err != nil {
		return nil, err
	}
	if offset != len(buf) {
		return nil, errors.Wrap(ErrGrammarViolation, "message has trailing data after its top-level Sequence")
	}

	seq, ok := v.(Sequence)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "top-level message must be a Sequence")
	}
	if len(seq) != 3 {
		return nil, errors.Wrapf(ErrGrammarViolation, "message must have exactly 3 fields, found %d", len(seq))
	}

	versionValue, ok := seq[0].(Integer)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "message version must be an Integer")
	}
	version := int(versionValue)
	if version != VersionV1 && version != VersionV2c {
		return nil, errors.Wrapf(ErrGrammarViolation, "message version %d is not 0 (v1) or 1 (v2c)", version)
	}

	community, ok := seq[1].(OctetString)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "message community must be an OctetString")
	}

	pdu, ok := seq[2].(*PDU)
	if !ok {
		return nil, errors.Wrap(ErrGrammarViolation, "message PDU field must be a recognised PDU")
	}
	if !pduAllowedForVersion(version, pdu.PDUTag) {
		return nil, errors.Wrapf(ErrUnsupportedForVersion, "PDU tag 0x%02x is not valid for version %d", pdu.PDUTag, version)
	}

	return &Message{
		version:   version,
		community: string(community),
		pdu:       pdu,
	}, nil
}

// Version returns the SNMP version: 0 for v1, 1 for v2c.
func (m *Message) Version() int { return m.version }

// Community returns the community string carried in the message.
func (m *Message) Community() string { return m.community }

// PDUType returns the tag that discriminates the PDU kind.
func (m *Message) PDUType() byte { return m.pdu.PDUTag }

// RequestID returns the PDU request-id. It is meaningless for the v1
// Trap PDU, which has no request-id field.
func (m *Message) RequestID() uint32 { return uint32(m.pdu.RequestID) }

// ErrorStatus returns the PDU error-status (or, for GetBulkRequest, the
// non-repeaters count the field is reinterpreted as).
func (m *Message) ErrorStatus() int { return m.pdu.ErrorStatus }

// ErrorIndex returns the PDU error-index (or, for GetBulkRequest, the
// max-repetitions count the field is reinterpreted as).
func (m *Message) ErrorIndex() int { return m.pdu.ErrorIndex }

// VarBindList returns the PDU's variable bindings, in wire order.
func (m *Message) VarBindList() VarBindList { return m.pdu.VarBinds }

// Enterprise returns the v1 Trap enterprise OID. Valid only when
// PDUType() == TagTrapV1.
func (m *Message) Enterprise() ObjectIdentifier { return m.pdu.Enterprise }

// AgentAddr returns the v1 Trap originating agent address. Valid only
// when PDUType() == TagTrapV1.
func (m *Message) AgentAddr() IPAddress { return m.pdu.AgentAddr }

// GenericTrap returns the v1 Trap generic-trap code (0..6). Valid only
// when PDUType() == TagTrapV1.
func (m *Message) GenericTrap() int { return m.pdu.GenericTrap }

// SpecificTrap returns the v1 Trap specific-trap code. Valid only when
// PDUType() == TagTrapV1.
func (m *Message) SpecificTrap() int { return m.pdu.SpecificTrap }

// Timestamp returns the v1 Trap sysUpTime timestamp. Valid only when
// PDUType() == TagTrapV1.
func (m *Message) Timestamp() TimeTicks { return m.pdu.Timestamp }

// SetRequestID sets the PDU request-id. On a v1 Trap message the value
// is stored but never encoded, since that PDU has no request-id field.
func (m *Message) SetRequestID(id uint32) { m.pdu.RequestID = int32(id) }

// SetError sets the PDU error-status and error-index.
func (m *Message) SetError(status, index int) {
	m.pdu.ErrorStatus = status
	m.pdu.ErrorIndex = index
}

// AddVarBind appends a variable binding to the PDU's varbind list. The
// appended VarBind becomes owned by this Message.
func (m *Message) AddVarBind(oid ObjectIdentifier, value Value) {
	m.pdu.VarBinds = append(m.pdu.VarBinds, VarBind{Name: oid, Value: value})
}

// SetTrapFields populates the v1 Trap-specific body fields. Callers
// must only call this on a message whose PDUType() == TagTrapV1.
func (m *Message) SetTrapFields(enterprise ObjectIdentifier, agentAddr IPAddress, genericTrap, specificTrap int, timestamp TimeTicks) error {
	if m.pdu.PDUTag != TagTrapV1 {
		return errors.Wrap(ErrGrammarViolation, "SetTrapFields called on a non-Trap PDU")
	}
	m.pdu.Enterprise = enterprise
	m.pdu.AgentAddr = agentAddr
	m.pdu.GenericTrap = genericTrap
	m.pdu.SpecificTrap = specificTrap
	m.pdu.Timestamp = timestamp
	return nil
}

// top builds the top-level Sequence wrapping version/community/pdu, the
// shape both EncodedSize and Build need.
func (m *Message) top() Sequence {
	return Sequence{Integer(m.version), OctetString(m.community), m.pdu}
}

// EncodedSize returns the total size, in bytes, of the message's BER
// encoding.
func (m *Message) EncodedSize() int {
	return m.top().EncodedLen()
}

// Build serializes the message into buf starting at offset 0 and
// returns the number of bytes written. buf must be at least
// EncodedSize() bytes long.
func (m *Message) Build(buf []byte) int {
	return m.top().Encode(buf, 0)
}

// Marshal is a convenience wrapper over EncodedSize/Build that
// allocates its own buffer.
func (m *Message) Marshal() []byte {
	buf := make([]byte, m.EncodedSize())
	m.Build(buf)
	return buf
}
