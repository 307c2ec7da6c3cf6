package packet

// Direction says which side sends a packet.
type Direction uint8

const (
	Clientbound Direction = iota
	Serverbound
)

func (d Direction) String() string {
	switch d {
	case Clientbound:
		return "clientbound"
	case Serverbound:
		return "serverbound"
	default:
		return "invalid"
	}
}

func (d Direction) Opposite() Direction {
	if d == Clientbound {
		return Serverbound
	}
	return Clientbound
}

// Role is the side of the connection this process plays.
type Role uint8

const (
	Client Role = iota
	Server
)

func (r Role) String() string {
	if r == Server {
		return "server"
	}
	return "client"
}

// Send is the direction of packets this side writes.
func (r Role) Send() Direction {
	if r == Server {
		return Clientbound
	}
	return Serverbound
}

// Recv is the direction of packets this side reads.
func (r Role) Recv() Direction { return r.Send().Opposite() }
