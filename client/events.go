package client

import "sync"

// Events emitted by a Client, with their arguments.
const (
	// EventJoin: dimension name (codec.Identifier), level.Dimension.
	EventJoin = "Join"
	// EventChat: plain text (string), overlay (bool).
	EventChat = "Chat"
	// EventTeleport: Position.
	EventTeleport = "Teleport"
	// EventChunkLoad and EventChunkUnload: level.ChunkPos.
	EventChunkLoad   = "ChunkLoad"
	EventChunkUnload = "ChunkUnload"
	// EventDisconnect: the error that ended the session.
	EventDisconnect = "Disconnect"
)

// Events calls listeners by event name. Listeners run on the goroutine
// handling the connection and must not block.
type Events struct {
	mu      *sync.RWMutex
	_Events map[string][]func(...interface{})
}

func NewEvents() Events {
	return Events{mu: new(sync.RWMutex), _Events: make(map[string][]func(...interface{}))}
}

// AddListener registers action for key and returns its index.
func (emitter Events) AddListener(key string, action func(...interface{})) int {
	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	emitter._Events[key] = append(emitter._Events[key], action)
	return len(emitter._Events[key]) - 1
}

func (emitter Events) RemoveListener(key string, index int) {
	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	if index >= 0 && index < len(emitter._Events[key]) {
		emitter._Events[key][index] = nil
	}
}

func (emitter Events) RemoveAllListeners(key string) {
	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	delete(emitter._Events, key)
}

func (emitter Events) Emit(key string, data ...interface{}) {
	emitter.mu.RLock()
	actions := append([]func(...interface{}){}, emitter._Events[key]...)
	emitter.mu.RUnlock()
	for _, action := range actions {
		if action == nil {
			continue
		}
		action(data...)
	}
}
