// Package v769 holds the packets of protocol 769, Minecraft 1.21.4.
//
// Types are named after their direction and, where the same packet exists
// in several states, the state: ClientboundConfigKeepAlive and
// ClientboundPlayKeepAlive are different packets with different ids.
package v769

import "github.com/dynamitemc/froglight/protocol/packet"

const (
	Protocol = 769
	Name     = "1.21.4"
)

type version struct{}

// Version is protocol 769. It is registered with the packet package on
// import.
var Version packet.Version = version{}

func init() { packet.Register(Version) }

func (version) Protocol() int32 { return Protocol }
func (version) Name() string    { return Name }

var sets = [...][2]*packet.Set{
	packet.Handshake:     {packet.Clientbound: handshakeClientbound, packet.Serverbound: handshakeServerbound},
	packet.Status:        {packet.Clientbound: statusClientbound, packet.Serverbound: statusServerbound},
	packet.Login:         {packet.Clientbound: loginClientbound, packet.Serverbound: loginServerbound},
	packet.Configuration: {packet.Clientbound: configClientbound, packet.Serverbound: configServerbound},
	packet.Play:          {packet.Clientbound: playClientbound, packet.Serverbound: playServerbound},
}

func (version) Packets(s packet.State, d packet.Direction) *packet.Set {
	if int(s) >= len(sets) || int(d) > 1 {
		return nil
	}
	return sets[s][d]
}

// NextState reports the state a half of the connection enters once p has
// passed through it. It is meant for conn.WithTransitions.
func NextState(p packet.Packet) (packet.State, bool) {
	switch p := p.(type) {
	case *ServerboundIntention:
		return packet.Intent(p.Intent).State()
	case *ClientboundLoginFinished, *ServerboundLoginAcknowledged:
		return packet.Configuration, true
	case *ClientboundFinishConfiguration, *ServerboundFinishConfiguration:
		return packet.Play, true
	case *ClientboundStartConfiguration, *ServerboundConfigurationAcknowledged:
		return packet.Configuration, true
	}
	return 0, false
}
