// internal/entity/menu_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Menu struct {
	Id        uuid.UUID
	Name      string
	Url       *string
	Icon      *string
	Order     int
	IsActive  bool
	ParentId  *uuid.UUID
	Depth     int
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by reads only, never persisted.
	Parent   *Menu
	Children []*Menu
}

func (m *Menu) IsRoot() bool {
	return m.ParentId == nil
}

// Clone returns a copy without relations.
func (m *Menu) Clone() *Menu {
	if m == nil {
		return nil
	}
	c := *m
	if m.ParentId != nil {
		p := *m.ParentId
		c.ParentId = &p
	}
	if m.Url != nil {
		u := *m.Url
		c.Url = &u
	}
	if m.Icon != nil {
		i := *m.Icon
		c.Icon = &i
	}
	c.Parent = nil
	c.Children = nil
	return &c
}
