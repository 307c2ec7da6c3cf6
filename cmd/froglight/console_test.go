package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dynamitemc/froglight/client"
	"github.com/dynamitemc/froglight/level"
	"github.com/dynamitemc/froglight/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	c := client.New(nil)
	chunk := level.NewChunk(level.ChunkPos{X: 1}, level.Overworld)
	chunk.SetBlock(16, 70, 2, 33)
	c.World.Load(chunk)
	ctx := context.Background()

	for line, want := range map[string]string{
		".pos":           "0.00 0.00 0.00 (yaw 0.0, pitch 0.0)",
		".chunks":        "1 chunks loaded",
		".block 16 70 2": "Block state 33",
		".block 0 70 2":  "Chunk not loaded",
		".block 1 2":     "Usage: .block <x> <y> <z>",
		".block a 2 3":   `Invalid coordinate "a"`,
		".fly":           "Unknown command .fly, try .pos, .chunks, .block or .quit",
		".quit":          "Disconnecting",
		"hello":          "Failed to send: " + client.ErrNotJoined.Error(),
	} {
		assert.Equal(t, want, command(ctx, c, line), line)
	}
}

func TestCommandBlockNames(t *testing.T) {
	blocks := level.NewBlockRegistry()
	_, err := blocks.Register("minecraft:air", 1)
	require.NoError(t, err)
	_, err = blocks.Register("minecraft:stone", 40)
	require.NoError(t, err)

	c := client.New(nil, client.WithBlocks(blocks))
	chunk := level.NewChunk(level.ChunkPos{}, c.World.Dimension())
	chunk.SetBlock(1, 2, 3, 33)
	chunk.SetBlock(1, 3, 3, 99)
	c.World.Load(chunk)

	ctx := context.Background()
	assert.Equal(t, "Block state 33 (minecraft:stone, state 32)", command(ctx, c, ".block 1 2 3"))
	assert.Equal(t, "Block state 0 (minecraft:air, state 0)", command(ctx, c, ".block 0 0 0"))
	assert.Equal(t, "Block state 99", command(ctx, c, ".block 1 3 3"))
}

func TestConsole(t *testing.T) {
	var out bytes.Buffer
	log := &logger.Logger{Out: &out}
	console(context.Background(), client.New(nil), log, strings.NewReader("\n.chunks\n  \n.pos\n"))
	assert.Equal(t, "0 chunks loaded\n0.00 0.00 0.00 (yaw 0.0, pitch 0.0)\n", out.String())
}
