package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/dynamitemc/froglight/protocol/codec"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	ErrUnknownBlock     = errors.New("level: unknown block")
	ErrDuplicateBlock   = errors.New("level: block registered twice")
	ErrStateOutOfRange  = errors.New("level: relative state out of range")
	ErrRegistryOverflow = errors.New("level: too many block states")
)

// RelativeState is the index of a state among the states of one block.
type RelativeState int32

type blockRange struct {
	first BlockState
	count int32
	def   BlockState
}

var airBlocks = [...]codec.Identifier{"minecraft:air", "minecraft:cave_air", "minecraft:void_air"}

// BlockRegistry maps global block state ids to blocks and their relative
// states. Blocks own consecutive ids in registration order.
type BlockRegistry struct {
	blocks *orderedmap.OrderedMap[codec.Identifier, blockRange]
	starts []BlockState
	keys   []codec.Identifier
	total  int32
}

func NewBlockRegistry() *BlockRegistry {
	return &BlockRegistry{blocks: orderedmap.New[codec.Identifier, blockRange]()}
}

// Register appends a block with the given number of states and returns
// its first state id.
func (r *BlockRegistry) Register(key codec.Identifier, states int) (BlockState, error) {
	return r.register(key, states, 0)
}

func (r *BlockRegistry) register(key codec.Identifier, states int, def RelativeState) (BlockState, error) {
	key = key.Normalize()
	if states < 1 {
		return 0, fmt.Errorf("level: block %s has %d states", key, states)
	}
	if int64(r.total)+int64(states) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s adds %d to %d", ErrRegistryOverflow, key, states, r.total)
	}
	if _, ok := r.blocks.Get(key); ok {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateBlock, key)
	}
	first := BlockState(r.total)
	r.blocks.Set(key, blockRange{first: first, count: int32(states), def: first + BlockState(def)})
	r.starts = append(r.starts, first)
	r.keys = append(r.keys, key)
	r.total += int32(states)
	return first, nil
}

// Len is the number of block states.
func (r *BlockRegistry) Len() int { return int(r.total) }

// Bits is the global palette width for this registry.
func (r *BlockRegistry) Bits() int { return RegistryBits(r.Len()) }

// Blocks returns the block keys in id order.
func (r *BlockRegistry) Blocks() []codec.Identifier {
	out := make([]codec.Identifier, 0, r.blocks.Len())
	for pair := r.blocks.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// State returns the global id of a block's relative state.
func (r *BlockRegistry) State(key codec.Identifier, rel RelativeState) (BlockState, error) {
	b, ok := r.blocks.Get(key.Normalize())
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBlock, key)
	}
	if rel < 0 || int32(rel) >= b.count {
		return 0, fmt.Errorf("%w: %s has %d states, got %d", ErrStateOutOfRange, key, b.count, rel)
	}
	return b.first + BlockState(rel), nil
}

// Default returns the default state of a block.
func (r *BlockRegistry) Default(key codec.Identifier) (BlockState, bool) {
	b, ok := r.blocks.Get(key.Normalize())
	return b.def, ok
}

// Block returns the block owning a global state id and the state's index
// within it.
func (r *BlockRegistry) Block(s BlockState) (codec.Identifier, RelativeState, bool) {
	if s < 0 || int32(s) >= r.total {
		return "", 0, false
	}
	i := sort.Search(len(r.starts), func(i int) bool { return r.starts[i] > s }) - 1
	return r.keys[i], RelativeState(s - r.starts[i]), true
}

// IsAir reports whether s is a state of air, cave air or void air. It can
// be used as a Dimension's AirFunc.
func (r *BlockRegistry) IsAir(s BlockState) bool {
	key, _, ok := r.Block(s)
	if !ok {
		return false
	}
	for _, air := range airBlocks {
		if key == air {
			return true
		}
	}
	return false
}

type blockReport struct {
	States []struct {
		ID      int32 `json:"id"`
		Default bool  `json:"default"`
	} `json:"states"`
}

// LoadBlockReport reads the blocks.json report of the game's data
// generator. Blocks must appear in id order with consecutive state ids.
func LoadBlockReport(rd io.Reader) (*BlockRegistry, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	report := orderedmap.New[string, blockReport]()
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("level: block report: %w", err)
	}

	r := NewBlockRegistry()
	for pair := report.Oldest(); pair != nil; pair = pair.Next() {
		var def RelativeState
		for i, s := range pair.Value.States {
			if s.ID != r.total+int32(i) {
				return nil, fmt.Errorf("level: block report: %s state %d has id %d, want %d", pair.Key, i, s.ID, r.total+int32(i))
			}
			if s.Default {
				def = RelativeState(i)
			}
		}
		if _, err := r.register(codec.Identifier(pair.Key), len(pair.Value.States), def); err != nil {
			return nil, err
		}
	}
	return r, nil
}
