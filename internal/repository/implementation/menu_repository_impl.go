package implementation

import (
	"context"
	"errors"

	"menu-tree-be/internal/entity"
	"menu-tree-be/internal/mapper"
	"menu-tree-be/internal/model"
	"menu-tree-be/internal/repository/contract"
	"menu-tree-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MenuMapper
}

func NewMenuRepository(db *gorm.DB) contract.MenuRepository {
	return &MenuRepositoryImpl{
		db:     db,
		mapper: mapper.NewMenuMapper(),
	}
}

func (r *MenuRepositoryImpl) Create(ctx context.Context, menu *entity.Menu) error {
	m := r.mapper.ToModel(menu)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*menu = *r.mapper.ToEntity(m)
	return nil
}

func (r *MenuRepositoryImpl) Update(ctx context.Context, menu *entity.Menu) error {
	m := r.mapper.ToModel(menu)
	// Save writes zero values too (is_active=false, sort_order=0, parent_id=NULL).
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*menu = *r.mapper.ToEntity(m)
	return nil
}

func (r *MenuRepositoryImpl) UpdateDepth(ctx context.Context, id uuid.UUID, depth int) error {
	return r.db.WithContext(ctx).
		Model(&model.Menu{}).
		Where("id = ?", id).
		Update("depth", depth).Error
}

func (r *MenuRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db.Dialector.Name() == "mysql" {
		return r.deleteBottomUp(ctx, id)
	}
	return r.db.WithContext(ctx).Delete(&model.Menu{}, "id = ?", id).Error
}

// deleteBottomUp removes the subtree one level at a time, deepest first.
// InnoDB stops following ON DELETE CASCADE after 15 levels.
func (r *MenuRepositoryImpl) deleteBottomUp(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		levels := [][]uuid.UUID{{id}}
		seen := map[uuid.UUID]struct{}{id: {}}

		for frontier := levels[0]; len(frontier) > 0; {
			var childIDs []uuid.UUID
			if err := tx.Model(&model.Menu{}).Where("parent_id IN ?", frontier).Pluck("id", &childIDs).Error; err != nil {
				return err
			}
			next := make([]uuid.UUID, 0, len(childIDs))
			for _, childID := range childIDs {
				if _, ok := seen[childID]; ok {
					continue
				}
				seen[childID] = struct{}{}
				next = append(next, childID)
			}
			if len(next) > 0 {
				levels = append(levels, next)
			}
			frontier = next
		}

		for i := len(levels) - 1; i >= 0; i-- {
			if err := tx.Delete(&model.Menu{}, "id IN ?", levels[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *MenuRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.Menu, error) {
	var m model.Menu
	query := specification.Apply(r.db.WithContext(ctx), specification.ByID{ID: id})
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MenuRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Menu, error) {
	var models []*model.Menu
	query := specification.Apply(r.db.WithContext(ctx), specification.SiblingOrder()...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MenuRepositoryImpl) FindChildren(ctx context.Context, parentId *uuid.UUID) ([]*entity.Menu, error) {
	var models []*model.Menu
	specs := append([]specification.Specification{specification.ByParentID{ParentID: parentId}}, specification.SiblingOrder()...)
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MenuRepositoryImpl) MaxSiblingOrder(ctx context.Context, parentId *uuid.UUID) (int, bool, error) {
	var m model.Menu
	query := specification.Apply(r.db.WithContext(ctx),
		specification.ByParentID{ParentID: parentId},
		specification.OrderBy{Field: "sort_order", Desc: true},
		specification.Limit{N: 1},
	)
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return m.SortOrder, true, nil
}

func (r *MenuRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Menu{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
