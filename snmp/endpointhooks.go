package snmp

import (
	"encoding/hex"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hooks defines the trace/diagnostic events an Endpoint raises around
// its receive loop and sends. Every field is independently optional; a
// caller-supplied Hooks value is merged over NoOpHooks so that setting
// only the field you care about never panics on a nil func.
//
// No hook blocks dispatch of the next datagram beyond the time it
// itself takes to run — they are called inline on the endpoint's
// single dispatch goroutine, same as the message handler.
type Hooks struct {
	// StartListening is called once the receive loop begins.
	StartListening func(addr net.Addr)

	// StopListening is called when the receive loop has exited, with
	// err set unless the exit was a clean Stop().
	StopListening func(addr net.Addr, err error)

	// ReceiveComplete is called after each recv_from completes,
	// successfully or not. correlationID identifies this datagram
	// across the rest of its hook calls.
	ReceiveComplete func(correlationID uuid.UUID, addr net.Addr, input []byte, err error)

	// ParseError is called when a received datagram fails to parse as
	// an SNMP message. The receive loop continues regardless.
	ParseError func(correlationID uuid.UUID, addr net.Addr, err error)

	// SendComplete is called after each send_to completes.
	SendComplete func(correlationID uuid.UUID, addr net.Addr, output []byte, err error)

	// TransportError is called on any receive-side I/O error other
	// than the socket being closed by Stop(), and by Send when it fails
	// or is called before Initialize.
	TransportError func(err error)
}

var (
	productionLogger, _  = zap.NewProduction()
	developmentLogger, _ = zap.NewDevelopment()

	defaultSugar    = productionLogger.Sugar()
	diagnosticSugar = developmentLogger.Sugar()
)

// DefaultHooks logs transport and parse errors only, at a level
// appropriate for a production agent or manager.
var DefaultHooks = &Hooks{
	ParseError: func(correlationID uuid.UUID, addr net.Addr, err error) {
		defaultSugar.Infow("snmp: discarding malformed datagram", "correlation_id", correlationID, "source", addr, "error", err)
	},
	TransportError: func(err error) {
		defaultSugar.Errorw("snmp: transport error", "error", err)
	},
}

// DiagnosticHooks logs every lifecycle and I/O event, including a hex
// dump of each datagram, for use while developing a handler.
var DiagnosticHooks = &Hooks{
	StartListening: func(addr net.Addr) {
		diagnosticSugar.Infow("snmp: listening", "address", addr)
	},
	StopListening: func(addr net.Addr, err error) {
		diagnosticSugar.Infow("snmp: stopped listening", "address", addr, "error", err)
	},
	ReceiveComplete: func(correlationID uuid.UUID, addr net.Addr, input []byte, err error) {
		diagnosticSugar.Debugw("snmp: receive complete", "correlation_id", correlationID, "source", addr, "error", err, "data", hex.EncodeToString(input))
	},
	ParseError: func(correlationID uuid.UUID, addr net.Addr, err error) {
		diagnosticSugar.Warnw("snmp: parse error", "correlation_id", correlationID, "source", addr, "error", err)
	},
	SendComplete: func(correlationID uuid.UUID, addr net.Addr, output []byte, err error) {
		diagnosticSugar.Debugw("snmp: send complete", "correlation_id", correlationID, "target", addr, "error", err, "data", hex.EncodeToString(output))
	},
	TransportError: func(err error) {
		diagnosticSugar.Errorw("snmp: transport error", "error", err)
	},
}

// NoOpHooks does nothing; it is the base every Hooks value is merged
// over, so that an endpoint created without WithHooks incurs no logging
// cost.
var NoOpHooks = &Hooks{
	StartListening:  func(addr net.Addr) {},
	StopListening:   func(addr net.Addr, err error) {},
	ReceiveComplete: func(correlationID uuid.UUID, addr net.Addr, input []byte, err error) {},
	ParseError:      func(correlationID uuid.UUID, addr net.Addr, err error) {},
	SendComplete:    func(correlationID uuid.UUID, addr net.Addr, output []byte, err error) {},
	TransportError:  func(err error) {},
}
