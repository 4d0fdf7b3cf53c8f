package snmp

import (
	"net"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
)

// endpointConfig holds the resolved settings an Option mutates before
// NewEndpoint installs them; Create uses defaultEndpointConfig. network/address/port are descriptive only until
// Initialize opens the socket; hooks is live from construction.
type endpointConfig struct {
	network string
	address string
	port    int
	hooks   *Hooks
}

var defaultEndpointConfig = endpointConfig{
	network: "udp4",
	hooks:   NoOpHooks,
}

// Option configures an Endpoint at construction time.
type Option func(*endpointConfig)

// WithAddress sets the address NewEndpoint's returned Endpoint will
// bind to when Initialize is called with an empty address.
func WithAddress(address string) Option {
	return func(c *endpointConfig) { c.address = address }
}

// WithPort sets the port NewEndpoint's returned Endpoint will bind to
// when Initialize is called with port 0. It overrides the role's
// default port (161 for Agent, 162 for Manager).
func WithPort(port int) Option {
	return func(c *endpointConfig) { c.port = port }
}

// WithNetwork overrides the UDP network passed to net.ListenUDP.
// Defaults to "udp4"; the spec requires IPv4 sockets, so there is
// ordinarily no reason to change this.
func WithNetwork(network string) Option {
	return func(c *endpointConfig) { c.network = network }
}

// WithHooks merges the supplied Hooks over NoOpHooks: any field left
// nil in hooks keeps its no-op default rather than becoming a nil
// func the receive loop would panic calling.
func WithHooks(hooks *Hooks) Option {
	return func(c *endpointConfig) {
		merged := *NoOpHooks
		if hooks != nil {
			_ = mergo.Merge(&merged, hooks, mergo.WithOverride)
		}
		c.hooks = &merged
	}
}

// NewEndpoint builds an Endpoint for the given role and applies opts.
// The returned Endpoint still requires Initialize before Start will
// succeed; WithAddress/WithPort only supply the defaults Initialize("",
// 0) will use. It returns an error if an option leaves the config in a
// state Initialize could never succeed from, so misconfiguration is
// caught at construction rather than at the first Initialize call.
func NewEndpoint(role Role, opts ...Option) (*Endpoint, error) {
	config := defaultEndpointConfig
	for _, opt := range opts {
		opt(&config)
	}

	switch config.network {
	case "udp", "udp4", "udp6":
	default:
		return nil, errors.Wrapf(ErrBindFailed, "unsupported network %q", config.network)
	}

	if config.address != "" && net.ParseIP(config.address) == nil {
		return nil, errors.Wrapf(ErrBindFailed, "invalid address %q", config.address)
	}

	e := Create(role)
	e.config = config
	return e, nil
}
