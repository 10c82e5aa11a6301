package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OptionalUUID tells an absent key apart from an explicit null.
// An empty string is treated like null.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func NewOptionalUUID(id *uuid.UUID) OptionalUUID {
	return OptionalUUID{Set: true, Value: id}
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return err
	}
	o.Value = &id
	return nil
}

func (o OptionalUUID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value.String())
}

// OptionalString tells an absent key apart from an explicit null, which clears the field.
type OptionalString struct {
	Set   bool
	Value *string
}

func NewOptionalString(v *string) OptionalString {
	return OptionalString{Set: true, Value: v}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Value = &raw
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Text is what validation sees; absent and null both read as empty.
func (o OptionalString) Text() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}

type CreateMenuRequest struct {
	Name     string     `json:"name" validate:"required,max=255"`
	Url      *string    `json:"url" validate:"omitempty,max=500"`
	Icon     *string    `json:"icon" validate:"omitempty,max=100"`
	Order    *int       `json:"order"`
	IsActive *bool      `json:"isActive"`
	ParentId *uuid.UUID `json:"parentId"`
}

// UpdateMenuRequest is a shallow patch: absent fields are left untouched,
// an explicit null clears url and icon.
type UpdateMenuRequest struct {
	Name     *string        `json:"name" validate:"omitempty,min=1,max=255"`
	Url      OptionalString `json:"url" validate:"omitempty,max=500"`
	Icon     OptionalString `json:"icon" validate:"omitempty,max=100"`
	Order    *int           `json:"order"`
	IsActive *bool          `json:"isActive"`
	ParentId OptionalUUID   `json:"parentId"`
}

type MoveMenuRequest struct {
	NewParentId OptionalUUID `json:"newParentId"`
	NewOrder    *int         `json:"newOrder"`
}

type ReorderMenuRequest struct {
	Order *int `json:"order" validate:"required"`
}

type MenuResponse struct {
	Id        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Url       *string         `json:"url,omitempty"`
	Icon      *string         `json:"icon,omitempty"`
	Order     int             `json:"order"`
	IsActive  bool            `json:"isActive"`
	ParentId  *uuid.UUID      `json:"parentId"`
	Depth     int             `json:"depth"`
	Parent    *MenuResponse   `json:"parent,omitempty"`
	Children  []*MenuResponse `json:"children"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type MenuEventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
