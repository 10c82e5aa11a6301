package mapper

import (
	"menu-tree-be/internal/dto"
	"menu-tree-be/internal/entity"
	"menu-tree-be/internal/model"
)

type MenuMapper struct{}

func NewMenuMapper() *MenuMapper {
	return &MenuMapper{}
}

func (m *MenuMapper) ToEntity(n *model.Menu) *entity.Menu {
	if n == nil {
		return nil
	}
	return &entity.Menu{
		Id:        n.Id,
		Name:      n.Name,
		Url:       n.Url,
		Icon:      n.Icon,
		Order:     n.SortOrder,
		IsActive:  n.IsActive,
		ParentId:  n.ParentId,
		Depth:     n.Depth,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *MenuMapper) ToModel(n *entity.Menu) *model.Menu {
	if n == nil {
		return nil
	}
	return &model.Menu{
		Id:        n.Id,
		Name:      n.Name,
		Url:       n.Url,
		Icon:      n.Icon,
		SortOrder: n.Order,
		IsActive:  n.IsActive,
		ParentId:  n.ParentId,
		Depth:     n.Depth,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *MenuMapper) ToEntities(menus []*model.Menu) []*entity.Menu {
	entities := make([]*entity.Menu, len(menus))
	for i, n := range menus {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

// ToResponse maps a node and whatever relations were loaded on it.
func (m *MenuMapper) ToResponse(n *entity.Menu) *dto.MenuResponse {
	if n == nil {
		return nil
	}
	res := &dto.MenuResponse{
		Id:        n.Id,
		Name:      n.Name,
		Url:       n.Url,
		Icon:      n.Icon,
		Order:     n.Order,
		IsActive:  n.IsActive,
		ParentId:  n.ParentId,
		Depth:     n.Depth,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Children:  make([]*dto.MenuResponse, 0, len(n.Children)),
	}
	if n.Parent != nil {
		res.Parent = m.ToResponse(n.Parent.Clone())
	}
	for _, child := range n.Children {
		res.Children = append(res.Children, m.ToResponse(child))
	}
	return res
}

func (m *MenuMapper) ToResponses(menus []*entity.Menu) []*dto.MenuResponse {
	responses := make([]*dto.MenuResponse, len(menus))
	for i, n := range menus {
		responses[i] = m.ToResponse(n)
	}
	return responses
}
