package snmp

// BER/SNMP type tags. See http://luca.ntop.org/Teaching/Appunti/asn1.html
// for the universal/application/context-specific tag layout this codec
// assumes.
const (
	TagBoolean          byte = 0x01
	TagInteger          byte = 0x02
	TagOctetString      byte = 0x04
	TagNull             byte = 0x05
	TagObjectIdentifier byte = 0x06
	TagSequence         byte = 0x30

	// SNMP application-class tags.
	TagIPAddress  byte = 0x40
	TagCounter32  byte = 0x41
	TagGauge32    byte = 0x42
	TagTimeTicks  byte = 0x43
	TagOpaque     byte = 0x44
	TagCounter64  byte = 0x46
	TagFloat      byte = 0x78

	// Context-specific exception markers used in variable bindings.
	TagNoSuchObject   byte = 0x80
	TagNoSuchInstance byte = 0x81
	TagEndOfMIBView   byte = 0x82

	// PDU discriminant tags. A PDU is a constructed value whose tag
	// identifies both its kind and, implicitly, the request/response
	// semantics that apply to it.
	TagGetRequest     byte = 0xA0
	TagGetNextRequest byte = 0xA1
	TagGetResponse    byte = 0xA2
	TagSetRequest     byte = 0xA3
	TagTrapV1         byte = 0xA4
	TagGetBulkRequest byte = 0xA5
	TagInformRequest  byte = 0xA6
	TagSNMPv2Trap     byte = 0xA7
)

// SNMP protocol versions, as carried in the first field of a Message.
const (
	VersionV1  = 0
	VersionV2c = 1
)

// Error status values, per RFC 1157 (0-5) and the RFC 1905/3416 v2c
// extensions (6-18).
const (
	ErrNoError             = 0
	ErrTooBig              = 1
	ErrNoSuchName          = 2
	ErrBadValue            = 3
	ErrReadOnly            = 4
	ErrGenErr              = 5
	ErrNoAccess            = 6
	ErrWrongType           = 7
	ErrWrongLength         = 8
	ErrWrongEncoding       = 9
	ErrWrongValue          = 10
	ErrNoCreation          = 11
	ErrInconsistentValue   = 12
	ErrResourceUnavailable = 13
	ErrCommitFailed        = 14
	ErrUndoFailed          = 15
	ErrAuthorizationError  = 16
	ErrNotWritable         = 17
	ErrInconsistentName    = 18

	maxErrorStatus = ErrInconsistentName
)

// isPDUTag reports whether tag is one of the eight recognised PDU
// discriminants.
func isPDUTag(tag byte) bool {
	return tag >= TagGetRequest && tag <= TagSNMPv2Trap
}

// pduAllowedForVersion reports whether the given PDU tag may appear in a
// message of the given SNMP version, per the v1/v2c matrix in the
// message grammar.
func pduAllowedForVersion(version int, tag byte) bool {
	switch tag {
	case TagGetRequest, TagGetNextRequest, TagGetResponse, TagSetRequest:
		return version == VersionV1 || version == VersionV2c
	case TagTrapV1:
		return version == VersionV1
	case TagGetBulkRequest, TagInformRequest, TagSNMPv2Trap:
		return version == VersionV2c
	default:
		return false
	}
}
