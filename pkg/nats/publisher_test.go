package nats

import (
	"testing"

	"menu-tree-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	tests := map[string]string{
		events.MenuCreated:   "menu.created",
		events.MenuMoved:     "menu.moved",
		events.MenuReordered: "menu.reordered",
		events.MenuDeleted:   "menu.deleted",
		"CUSTOM":             "menu.custom",
	}
	for eventType, want := range tests {
		assert.Equal(t, want, Subject(eventType), eventType)
	}
}
