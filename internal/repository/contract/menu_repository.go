package contract

import (
	"context"

	"menu-tree-be/internal/entity"

	"github.com/google/uuid"
)

// MenuRepository stores menu nodes as flat rows. FindOne returns (nil, nil) when
// no row matches. Delete removes the whole subtree through the storage cascade.
type MenuRepository interface {
	Create(ctx context.Context, menu *entity.Menu) error
	Update(ctx context.Context, menu *entity.Menu) error
	UpdateDepth(ctx context.Context, id uuid.UUID, depth int) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, id uuid.UUID) (*entity.Menu, error)
	FindAll(ctx context.Context) ([]*entity.Menu, error)
	FindChildren(ctx context.Context, parentId *uuid.UUID) ([]*entity.Menu, error)
	MaxSiblingOrder(ctx context.Context, parentId *uuid.UUID) (order int, found bool, err error)
	Count(ctx context.Context) (int64, error)
}
