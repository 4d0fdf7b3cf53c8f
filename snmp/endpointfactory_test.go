package snmp

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestNewEndpointDefaults(t *testing.T) {
	e, err := NewEndpoint(RoleAgent)
	assert.NoError(t, err)
	assert.Equal(t, RoleAgent, e.role)
	assert.Equal(t, "udp4", e.config.network)
	assert.Equal(t, NoOpHooks, e.config.hooks)
	assert.Equal(t, 0, e.config.port)
}

func TestNewEndpointAppliesOptions(t *testing.T) {
	e, err := NewEndpoint(RoleManager, WithAddress("127.0.0.1"), WithPort(1162), WithNetwork("udp"))
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", e.config.address)
	assert.Equal(t, 1162, e.config.port)
	assert.Equal(t, "udp", e.config.network)
}

func TestNewEndpointRejectsUnsupportedNetwork(t *testing.T) {
	e, err := NewEndpoint(RoleAgent, WithNetwork("tcp"))
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrBindFailed)
}

func TestNewEndpointRejectsInvalidAddress(t *testing.T) {
	e, err := NewEndpoint(RoleAgent, WithAddress("not-an-ip"))
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrBindFailed)
}

func TestRoleDefaultPort(t *testing.T) {
	assert.Equal(t, 161, RoleAgent.defaultPort())
	assert.Equal(t, 162, RoleManager.defaultPort())
}
