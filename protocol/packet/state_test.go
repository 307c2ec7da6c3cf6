package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	legal := map[[2]State]bool{
		{Handshake, Status}:    true,
		{Handshake, Login}:     true,
		{Login, Configuration}: true,
		{Configuration, Play}:  true,
		{Play, Configuration}:  true,
	}
	for _, from := range States {
		for _, to := range States {
			assert.Equal(t, legal[[2]State{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition(State(9), Play))
}

func TestIntentState(t *testing.T) {
	tests := []struct {
		intent Intent
		state  State
		ok     bool
	}{
		{IntentStatus, Status, true},
		{IntentLogin, Login, true},
		{IntentTransfer, Login, true},
		{Intent(0), Handshake, false},
		{Intent(4), Handshake, false},
	}
	for _, tt := range tests {
		s, ok := tt.intent.State()
		assert.Equal(t, tt.state, s)
		assert.Equal(t, tt.ok, ok)
	}
}

func TestRoleDirections(t *testing.T) {
	assert.Equal(t, Serverbound, Client.Send())
	assert.Equal(t, Clientbound, Client.Recv())
	assert.Equal(t, Clientbound, Server.Send())
	assert.Equal(t, Serverbound, Server.Recv())
	assert.Equal(t, Clientbound, Serverbound.Opposite())
	assert.Equal(t, "serverbound", Serverbound.String())
	assert.Equal(t, "configuration", Configuration.String())
}
