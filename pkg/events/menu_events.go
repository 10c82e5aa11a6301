package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	MenuCreated   = "MENU_CREATED"
	MenuUpdated   = "MENU_UPDATED"
	MenuMoved     = "MENU_MOVED"
	MenuReordered = "MENU_REORDERED"
	MenuDeleted   = "MENU_DELETED"
)

// NewMenuEvent builds a menu change event. parentId may be nil for roots.
func NewMenuEvent(eventType string, menuId uuid.UUID, parentId *uuid.UUID, extra map[string]interface{}) Event {
	data := map[string]interface{}{
		"menu_id":   menuId.String(),
		"parent_id": nil,
	}
	if parentId != nil {
		data["parent_id"] = parentId.String()
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}
