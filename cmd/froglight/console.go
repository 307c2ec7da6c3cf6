package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dynamitemc/froglight/client"
	"github.com/dynamitemc/froglight/logger"
)

// console reads lines from r until it ends or ctx is done. Lines starting
// with a dot are local commands, anything else is sent as chat.
func console(ctx context.Context, c *client.Client, log *logger.Logger, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if out := command(ctx, c, line); out != "" {
			log.Print("%s", out)
		}
	}
}

func command(ctx context.Context, c *client.Client, line string) string {
	if !strings.HasPrefix(line, ".") {
		if err := c.Chat(ctx, line); err != nil {
			return "Failed to send: " + err.Error()
		}
		return ""
	}

	args := strings.Fields(line)
	switch args[0] {
	case ".pos":
		return formatPosition(c.Position())
	case ".chunks":
		return fmt.Sprintf("%d chunks loaded", c.World.Len())
	case ".block":
		if len(args) != 4 {
			return "Usage: .block <x> <y> <z>"
		}
		var xyz [3]int
		for i, s := range args[1:] {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Sprintf("Invalid coordinate %q", s)
			}
			xyz[i] = n
		}
		state, ok := c.World.Block(xyz[0], xyz[1], xyz[2])
		if !ok {
			return "Chunk not loaded"
		}
		if blocks := c.Blocks(); blocks != nil {
			if key, rel, ok := blocks.Block(state); ok {
				return fmt.Sprintf("Block state %d (%s, state %d)", state, key, rel)
			}
		}
		return fmt.Sprintf("Block state %d", state)
	case ".quit":
		c.Close()
		return "Disconnecting"
	}
	return fmt.Sprintf("Unknown command %s, try .pos, .chunks, .block or .quit", args[0])
}

func formatPosition(p client.Position) string {
	return fmt.Sprintf("%.2f %.2f %.2f (yaw %.1f, pitch %.1f)", p.X, p.Y, p.Z, p.Yaw, p.Pitch)
}
