package packet

import (
	"fmt"
	"sort"
	"sync"
)

// Version is one supported protocol version and its packet tables.
type Version interface {
	// Protocol is the number sent in the handshake, e.g. 769.
	Protocol() int32
	// Name is the game release, e.g. "1.21.4".
	Name() string
	// Packets returns the set for a state and direction. It never
	// returns nil for a valid state.
	Packets(State, Direction) *Set
}

var (
	versionsMu sync.RWMutex
	versions   = make(map[int32]Version)
)

// Register makes a version available to Lookup. Registering the same
// protocol number twice panics.
func Register(v Version) {
	versionsMu.Lock()
	defer versionsMu.Unlock()
	if _, dup := versions[v.Protocol()]; dup {
		panic(fmt.Sprintf("packet: protocol %d registered twice", v.Protocol()))
	}
	versions[v.Protocol()] = v
}

// Lookup returns the registered version for a protocol number.
func Lookup(protocol int32) (Version, bool) {
	versionsMu.RLock()
	defer versionsMu.RUnlock()
	v, ok := versions[protocol]
	return v, ok
}

// Versions returns every registered version, oldest first.
func Versions() []Version {
	versionsMu.RLock()
	defer versionsMu.RUnlock()
	list := make([]Version, 0, len(versions))
	for _, v := range versions {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Protocol() < list[j].Protocol() })
	return list
}
