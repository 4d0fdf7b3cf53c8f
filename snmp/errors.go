package snmp

import "github.com/pkg/errors"

// Sentinel errors for the taxonomy used across the codec, message model
// and endpoint runtime. Callers compare against these with errors.Is;
// call sites wrap them with errors.Wrap/Wrapf to attach positional
// context without losing that comparability.
var (
	// ErrMalformed indicates the BER byte stream violates encoding
	// rules: bad length field, truncated payload, unknown tag, or OID
	// subidentifier overflow.
	ErrMalformed = errors.New("ber: malformed encoding")

	// ErrGrammarViolation indicates the BER is well-formed but the SNMP
	// message grammar is not honoured (wrong child count or type at a
	// required position).
	ErrGrammarViolation = errors.New("snmp: grammar violation")

	// ErrUnsupportedForVersion indicates a (version, PDU type) pair
	// forbidden by the SNMP message grammar.
	ErrUnsupportedForVersion = errors.New("snmp: operation unsupported for version")

	// ErrBindFailed indicates the OS refused a socket bind.
	ErrBindFailed = errors.New("snmp: bind failed")

	// ErrSendFailed indicates send_to returned an error or wrote fewer
	// bytes than requested.
	ErrSendFailed = errors.New("snmp: send failed")

	// ErrReceiveFailed indicates recv_from returned a non-cancellation
	// OS error.
	ErrReceiveFailed = errors.New("snmp: receive failed")

	// ErrNotInitialized indicates an operation was attempted before
	// Initialize.
	ErrNotInitialized = errors.New("snmp: endpoint not initialized")
)
