package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	events := NewEvents()
	var got []interface{}
	first := events.AddListener(EventChat, func(args ...interface{}) { got = append(got, args...) })
	events.AddListener(EventChat, func(args ...interface{}) { got = append(got, "second") })
	events.AddListener(EventTeleport, func(args ...interface{}) { t.Fatal("wrong event") })

	events.Emit(EventChat, "hello", false)
	assert.Equal(t, []interface{}{"hello", false, "second"}, got)

	got = nil
	events.RemoveListener(EventChat, first)
	events.RemoveListener(EventChat, 5)
	events.Emit(EventChat, "again")
	assert.Equal(t, []interface{}{"second"}, got)

	got = nil
	events.RemoveAllListeners(EventChat)
	events.Emit(EventChat, "gone")
	assert.Nil(t, got)
}
