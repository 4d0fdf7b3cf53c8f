package snmp

import (
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// maxDatagramSize is the largest possible UDP payload. The endpoint
// allocates its receive buffer at this size rather than the 1500 bytes
// a typical Ethernet MTU would suggest, so that no conformant SNMP
// datagram is ever truncated; see SPEC_FULL.md §6.
const maxDatagramSize = 65535

// Role selects an endpoint's default port: Agent listens on 161,
// Manager on 162. Parsing and dispatch behave identically for both —
// this is the only behavioral difference the spec assigns to role.
type Role int

const (
	RoleAgent Role = iota
	RoleManager
)

func (r Role) defaultPort() int {
	if r == RoleManager {
		return 162
	}
	return 161
}

// MessageHandler is invoked once per successfully parsed inbound
// datagram. Implementations must not retain msg beyond the call; the
// endpoint destroys it once the handler returns.
type MessageHandler func(msg *Message, remoteIP net.IP, remotePort int)

// ErrorHandler is invoked on transport and parse errors. It is never
// called when the receive loop exits because the socket was closed by
// Stop().
type ErrorHandler func(err error)

// Endpoint drives an asynchronous UDP receive loop and exposes a
// synchronous Send, playing either an Agent or a Manager role. All
// receive completions and handler invocations happen on the single
// goroutine the receive loop runs on; Send runs on the goroutine of
// its caller (the loop's own when a handler replies); see SPEC_FULL.md §5.
type Endpoint struct {
	role   Role
	config endpointConfig

	mu         sync.Mutex
	conn       net.PacketConn
	running    bool
	onMessage  MessageHandler
	onError    ErrorHandler
}

// Create constructs an endpoint for the given role, bound to no
// address. Call Initialize before Start.
func Create(role Role) *Endpoint {
	return &Endpoint{
		role:   role,
		config: defaultEndpointConfig,
	}
}

// Initialize opens a UDPv4 socket and binds it. Address "" and port 0
// fall back to the values set with WithAddress/WithPort, if any; past
// that, port 0 means "use the role's default" (161 for Agent, 162 for
// Manager) and address "" binds all interfaces.
func (e *Endpoint) Initialize(address string, port int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if address == "" {
		address = e.config.address
	}
	if port == 0 {
		port = e.config.port
	}
	if port == 0 {
		port = e.role.defaultPort()
	}

	var ip net.IP
	if address != "" {
		ip = net.ParseIP(address)
		if ip == nil {
			return errors.Wrapf(ErrBindFailed, "invalid bind address %q", address)
		}
	}

	conn, err := net.ListenUDP(e.config.network, &net.UDPAddr{IP: ip, Port: port})
	if err != nil {
		return errors.Wrap(ErrBindFailed, err.Error())
	}

	e.conn = conn
	e.config.address = address
	e.config.port = port
	return nil
}

// Start begins the asynchronous receive loop. It is idempotent: a
// second call while the loop is already running is a no-op that
// returns true.
func (e *Endpoint) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conn == nil {
		return false
	}
	if e.running {
		return true
	}
	e.running = true
	go e.receiveLoop(e.conn)
	return true
}

// Stop requests loop termination by closing the underlying socket,
// which is the cancellation primitive for a pending net.PacketConn
// ReadFrom. An in-flight handler invocation is not interrupted.
func (e *Endpoint) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.running = false
	_ = e.conn.Close()
}

// Send serializes msg and hands it to the OS for transmission to
// (ip, port). It reports whether the OS accepted every byte.
func (e *Endpoint) Send(msg *Message, ip net.IP, port int) bool {
	e.mu.Lock()
	conn := e.conn
	hooks := e.config.hooks
	e.mu.Unlock()

	if conn == nil {
		hooks.TransportError(errors.Wrap(ErrNotInitialized, "Send called before Initialize"))
		return false
	}

	buf := msg.Marshal()
	addr := &net.UDPAddr{IP: ip, Port: port}
	n, err := conn.WriteTo(buf, addr)

	correlationID := uuid.New()
	hooks.SendComplete(correlationID, addr, buf[:n], err)
	if err != nil {
		hooks.TransportError(errors.Wrap(ErrSendFailed, err.Error()))
		return false
	}
	return n == len(buf)
}

// OnMessage registers the handler invoked for each successfully parsed
// inbound message. Setting it after Start takes effect on the next
// received datagram.
func (e *Endpoint) OnMessage(handler MessageHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onMessage = handler
}

// OnError registers the handler invoked on transport and parse errors.
func (e *Endpoint) OnError(handler ErrorHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onError = handler
}

func (e *Endpoint) messageHandler() MessageHandler {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onMessage
}

func (e *Endpoint) errorHandler() ErrorHandler {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onError
}

func (e *Endpoint) hooks() *Hooks {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.hooks
}

// receiveLoop implements the receive-loop algorithm of SPEC_FULL.md
// §4.3: repeatedly post a receive, parse what comes back, dispatch to
// the message handler on success or the error handler on failure, and
// keep going until the socket is closed by Stop().
func (e *Endpoint) receiveLoop(conn net.PacketConn) {
	localAddr := conn.LocalAddr()
	hooks := e.hooks()
	hooks.StartListening(localAddr)

	var loopErr error
	defer func() { hooks.StopListening(localAddr, loopErr) }()

	buf := make([]byte, maxDatagramSize)
	for {
		n, remoteAddr, err := conn.ReadFrom(buf)
		correlationID := uuid.New()

		if err != nil {
			hooks.ReceiveComplete(correlationID, remoteAddr, nil, err)
			if errors.Is(err, net.ErrClosed) {
				return
			}
			recvErr := errors.Wrap(ErrReceiveFailed, err.Error())
			hooks.TransportError(recvErr)
			if h := e.errorHandler(); h != nil {
				h(recvErr)
			}
			continue
		}

		datagram := append([]byte(nil), buf[:n]...)
		hooks.ReceiveComplete(correlationID, remoteAddr, datagram, nil)

		if n == 0 {
			continue
		}

		msg, parseErr := ParseMessage(datagram)
		if parseErr != nil {
			wrapped := errors.Wrap(parseErr, "snmp: failed to parse inbound datagram")
			hooks.ParseError(correlationID, remoteAddr, wrapped)
			if h := e.errorHandler(); h != nil {
				h(wrapped)
			}
			continue
		}

		remoteIP, remotePort := splitUDPAddr(remoteAddr)
		if h := e.messageHandler(); h != nil {
			h(msg, remoteIP, remotePort)
		}
	}
}

func splitUDPAddr(addr net.Addr) (net.IP, int) {
	if udpAddr, ok := addr.(*net.UDPAddr); ok {
		return udpAddr.IP, udpAddr.Port
	}
	return nil, 0
}
