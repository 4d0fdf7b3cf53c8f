package snmp

import "github.com/pkg/errors"

// VarBind is a single (name, value) variable binding: an OID paired
// with a BER value of any type. The pairing is itself a two-element
// Sequence on the wire.
type VarBind struct {
	Name  ObjectIdentifier
	Value Value
}

func (vb VarBind) EncodedLen() int {
	return leafEncodedLen(vb.Name.EncodedLen() + vb.Value.EncodedLen())
}

func (vb VarBind) Encode(buf []byte, offset int) int {
	payloadLen := vb.Name.EncodedLen() + vb.Value.EncodedLen()
	buf[offset] = TagSequence
	offset++
	offset = encodeLength(buf, offset, payloadLen)
	offset = vb.Name.Encode(buf, offset)
	return vb.Value.Encode(buf, offset)
}

// VarBindList is an ordered, duplicate-permitting list of variable
// bindings.
type VarBindList []VarBind

func (vbl VarBindList) Tag() byte { return TagSequence }

func (vbl VarBindList) EncodedLen() int {
	return leafEncodedLen(varBindListPayloadLen(vbl))
}

func (vbl VarBindList) Encode(buf []byte, offset int) int {
	payloadLen := varBindListPayloadLen(vbl)
	buf[offset] = TagSequence
	offset++
	offset = encodeLength(buf, offset, payloadLen)
	for _, vb := range vbl {
		offset = vb.Encode(buf, offset)
	}
	return offset
}

func varBindListPayloadLen(vbl VarBindList) int {
	n := 0
	for _, vb := range vbl {
		n += vb.EncodedLen()
	}
	return n
}

// decodeVarBindList parses a VarBindList from a Sequence payload,
// enforcing the grammar requirement that every child is itself a
// two-element Sequence with an OID first.
func decodeVarBindList(payload []byte) (VarBindList, error) {
	var vbl VarBindList
	offset := 0
	for offset < len(payload) {
		if payload[offset] != TagSequence {
			return nil, errors.Wrapf(ErrGrammarViolation, "varbind at offset %d: expected a Sequence", offset)
		}
		entryLen, entryOffset, err := decodeLength(payload, offset+1)
		if err != nil {
			return nil, err
		}
		if entryOffset+entryLen > len(payload) {
			return nil, errors.Wrap(ErrMalformed, "varbind sequence length exceeds container")
		}
		entry := payload[entryOffset : entryOffset+entryLen]

		name, nameEnd, err := Parse(entry, 0)
		if err != nil {
			return nil, err
		}
		oid, ok := name.(ObjectIdentifier)
		if !ok {
			return nil, errors.Wrap(ErrGrammarViolation, "varbind name must be an ObjectIdentifier")
		}
		value, valueEnd, err := Parse(entry, nameEnd)
		if err != nil {
			return nil, err
		}
		if valueEnd != len(entry) {
			return nil, errors.Wrap(ErrGrammarViolation, "varbind has trailing data after its value")
		}

		vbl = append(vbl, VarBind{Name: oid, Value: value})
		offset = entryOffset + entryLen
	}
	return vbl, nil
}
