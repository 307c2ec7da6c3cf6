package level

import (
	"sort"
	"sync"
)

// World is the set of loaded chunks of one dimension. It is the lock
// around chunks and sections, which are not safe for concurrent use
// themselves.
type World struct {
	mu     sync.RWMutex
	dim    Dimension
	chunks map[ChunkPos]*Chunk
}

func NewWorld(dim Dimension) *World {
	return &World{dim: dim, chunks: make(map[ChunkPos]*Chunk)}
}

func (w *World) Dimension() Dimension {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.dim
}

// Reset unloads every chunk and switches to another dimension, as on
// respawn or reconfiguration.
func (w *World) Reset(dim Dimension) {
	w.mu.Lock()
	w.dim = dim
	w.chunks = make(map[ChunkPos]*Chunk)
	w.mu.Unlock()
}

// Load adds or replaces a chunk. The world owns it from then on.
func (w *World) Load(c *Chunk) {
	w.mu.Lock()
	w.chunks[c.Pos] = c
	w.mu.Unlock()
}

// Unload drops a chunk and reports whether it was loaded.
func (w *World) Unload(pos ChunkPos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.chunks[pos]
	delete(w.chunks, pos)
	return ok
}

func (w *World) Loaded(pos ChunkPos) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.chunks[pos]
	return ok
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// Positions returns the loaded chunk positions, ordered by X then Z.
func (w *World) Positions() []ChunkPos {
	w.mu.RLock()
	out := make([]ChunkPos, 0, len(w.chunks))
	for pos := range w.chunks {
		out = append(out, pos)
	}
	w.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Z < out[j].Z
	})
	return out
}

// View calls f with a loaded chunk under the read lock. f must not keep
// the chunk or modify it.
func (w *World) View(pos ChunkPos, f func(*Chunk)) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[pos]
	if ok {
		f(c)
	}
	return ok
}

// Update calls f with a loaded chunk under the write lock.
func (w *World) Update(pos ChunkPos, f func(*Chunk)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.chunks[pos]
	if ok {
		f(c)
	}
	return ok
}

// Block returns the block at world coordinates, or false when its chunk
// is not loaded.
func (w *World) Block(x, y, z int) (b BlockState, ok bool) {
	ok = w.View(ChunkPosAt(x, z), func(c *Chunk) { b = c.Block(x, y, z) })
	return b, ok
}

// SetBlock stores b at world coordinates and returns the previous block,
// or false when the chunk is not loaded.
func (w *World) SetBlock(x, y, z int, b BlockState) (prev BlockState, ok bool) {
	ok = w.Update(ChunkPosAt(x, z), func(c *Chunk) { prev = c.SetBlock(x, y, z, b) })
	return prev, ok
}
