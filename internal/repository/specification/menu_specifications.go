package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByParentID selects siblings; a nil ParentID selects roots.
type ByParentID struct {
	ParentID *uuid.UUID
}

func (s ByParentID) Apply(db *gorm.DB) *gorm.DB {
	if s.ParentID == nil {
		return db.Where("parent_id IS NULL")
	}
	return db.Where("parent_id = ?", *s.ParentID)
}

// SiblingOrder is the display order: sort_order, then storage order.
func SiblingOrder() []Specification {
	return []Specification{
		OrderBy{Field: "sort_order"},
		OrderBy{Field: "created_at"},
	}
}
