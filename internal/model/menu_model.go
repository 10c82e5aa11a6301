package model

import (
	"time"

	"github.com/google/uuid"
)

// Menu is stored as a flat row; the self-referencing FK removes whole subtrees on delete.
type Menu struct {
	Id        uuid.UUID  `gorm:"type:varchar(36);primaryKey"`
	Name      string     `gorm:"type:varchar(255);not null"`
	Url       *string    `gorm:"type:varchar(500)"`
	Icon      *string    `gorm:"type:varchar(100)"`
	SortOrder int        `gorm:"column:sort_order;not null;index"`
	IsActive  bool       `gorm:"not null"`
	ParentId  *uuid.UUID `gorm:"type:varchar(36);index"`
	Depth     int        `gorm:"not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`

	Children []Menu `gorm:"foreignKey:ParentId;constraint:OnDelete:CASCADE"`
}

func (Menu) TableName() string {
	return "menus"
}
