package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"menu-tree-be/internal/dto"
	"menu-tree-be/internal/entity"
	"menu-tree-be/internal/mapper"
	"menu-tree-be/internal/pkg/apperror"
	"menu-tree-be/internal/pkg/logger"
	"menu-tree-be/internal/pkg/metrics"
	"menu-tree-be/internal/repository/cache"
	"menu-tree-be/internal/repository/contract"
	"menu-tree-be/internal/repository/unitofwork"
	"menu-tree-be/pkg/events"

	"github.com/google/uuid"
)

const treeCacheKey = "menus:tree"

type IMenuService interface {
	Create(ctx context.Context, req *dto.CreateMenuRequest) (*dto.MenuResponse, error)
	FindAllTree(ctx context.Context) ([]*dto.MenuResponse, error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMenuRequest) (*dto.MenuResponse, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id uuid.UUID, req *dto.MoveMenuRequest) (*dto.MenuResponse, error)
	Reorder(ctx context.Context, id uuid.UUID, order int) (*dto.MenuResponse, error)
}

type MenuServiceOptions struct {
	// CascadeDepth rewrites descendant depths whenever a node's own depth changes.
	CascadeDepth bool
}

type menuService struct {
	uowFactory       unitofwork.RepositoryFactory
	treeCache        cache.TreeCache
	publisherService IPublisherService
	metrics          *metrics.Metrics
	logger           logger.ILogger
	mapper           *mapper.MenuMapper
	opts             MenuServiceOptions
	now              func() time.Time

	// cacheMu orders cache fills against invalidations. generation counts
	// invalidations so a read that overlapped a write never fills the cache.
	cacheMu    sync.Mutex
	generation uint64
}

// NewMenuService wires the hierarchy manager. publisherService and m may be nil.
func NewMenuService(
	uowFactory unitofwork.RepositoryFactory,
	treeCache cache.TreeCache,
	publisherService IPublisherService,
	m *metrics.Metrics,
	log logger.ILogger,
	opts MenuServiceOptions,
) IMenuService {
	if treeCache == nil {
		treeCache = cache.NewNoopTreeCache()
	}
	return &menuService{
		uowFactory:       uowFactory,
		treeCache:        treeCache,
		publisherService: publisherService,
		metrics:          m,
		logger:           log,
		mapper:           mapper.NewMenuMapper(),
		opts:             opts,
		now:              time.Now,
	}
}

func (s *menuService) Create(ctx context.Context, req *dto.CreateMenuRequest) (res *dto.MenuResponse, err error) {
	defer func() { s.metrics.ObserveOperation("create", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MenuRepository()

	depth := 0
	if req.ParentId != nil {
		parent, err := repo.FindOne(ctx, *req.ParentId)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NotFound(fmt.Sprintf("Parent menu with ID %s not found", *req.ParentId))
		}
		depth = parent.Depth + 1
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		highest, found, err := repo.MaxSiblingOrder(ctx, req.ParentId)
		if err != nil {
			return nil, err
		}
		if found {
			order = highest + 1
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now()
	menu := &entity.Menu{
		Id:        uuid.New(),
		Name:      req.Name,
		Url:       req.Url,
		Icon:      req.Icon,
		Order:     order,
		IsActive:  isActive,
		ParentId:  copyID(req.ParentId),
		Depth:     depth,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Create(ctx, menu); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, events.MenuCreated, menu, map[string]interface{}{
		"name":  menu.Name,
		"order": menu.Order,
		"depth": menu.Depth,
	})

	return s.mapper.ToResponse(menu), nil
}

func (s *menuService) FindAllTree(ctx context.Context) (res []*dto.MenuResponse, err error) {
	defer func() { s.metrics.ObserveOperation("find_all_tree", err) }()

	if raw, ok := s.treeCache.Get(ctx, treeCacheKey); ok {
		var cached []*dto.MenuResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		s.logger.Warn("CACHE", "Discarding unreadable menu tree cache entry", nil)
	}

	startGen := s.cacheGeneration()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.MenuRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	tree := s.mapper.ToResponses(buildForest(rows))

	if raw, err := json.Marshal(tree); err == nil {
		s.fillTreeCache(ctx, startGen, raw)
	}

	return tree, nil
}

func (s *menuService) cacheGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

// fillTreeCache stores raw unless a mutation invalidated the cache after startGen was read.
func (s *menuService) fillTreeCache(ctx context.Context, startGen uint64, raw []byte) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.generation != startGen {
		return
	}
	if err := s.treeCache.Set(ctx, treeCacheKey, raw); err != nil {
		s.logger.Warn("CACHE", "Failed to cache menu tree", map[string]interface{}{"error": err.Error()})
	}
}

func (s *menuService) invalidateTreeCache(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.generation++
	if err := s.treeCache.Delete(ctx, treeCacheKey); err != nil {
		s.logger.Error("CACHE", "Failed to invalidate menu tree cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *menuService) FindOne(ctx context.Context, id uuid.UUID) (res *dto.MenuResponse, err error) {
	defer func() { s.metrics.ObserveOperation("find_one", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MenuRepository()

	menu, err := s.findExisting(ctx, repo, id)
	if err != nil {
		return nil, err
	}

	if menu.ParentId != nil {
		// A dangling parent leaves Parent empty.
		parent, err := repo.FindOne(ctx, *menu.ParentId)
		if err != nil {
			return nil, err
		}
		menu.Parent = parent
	}

	children, err := repo.FindChildren(ctx, &menu.Id)
	if err != nil {
		return nil, err
	}
	menu.Children = children

	return s.mapper.ToResponse(menu), nil
}

func (s *menuService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMenuRequest) (res *dto.MenuResponse, err error) {
	defer func() { s.metrics.ObserveOperation("update", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MenuRepository()

	menu, err := s.findExisting(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	oldDepth := menu.Depth

	if req.ParentId.Set && !sameID(req.ParentId.Value, menu.ParentId) {
		if req.ParentId.Value != nil {
			parent, err := s.findParent(ctx, repo, *req.ParentId.Value)
			if err != nil {
				return nil, err
			}
			if err := s.ensureNotCircular(ctx, repo, menu.Id, parent.Id); err != nil {
				return nil, err
			}
			menu.ParentId = copyID(&parent.Id)
			menu.Depth = parent.Depth + 1
		} else {
			// Detaching through update keeps the stored depth; Move resets it.
			menu.ParentId = nil
		}
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Url.Set {
		menu.Url = req.Url.Value
	}
	if req.Icon.Set {
		menu.Icon = req.Icon.Value
	}
	if req.Order != nil {
		menu.Order = *req.Order
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	menu.UpdatedAt = s.now()

	cascaded, err := s.save(ctx, uow, menu, oldDepth)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, events.MenuUpdated, menu, map[string]interface{}{
		"depth":               menu.Depth,
		"descendants_updated": cascaded,
	})

	return s.mapper.ToResponse(menu), nil
}

func (s *menuService) Remove(ctx context.Context, id uuid.UUID) (err error) {
	defer func() { s.metrics.ObserveOperation("remove", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MenuRepository()

	menu, err := s.findExisting(ctx, repo, id)
	if err != nil {
		return err
	}

	// Descendants go with the row through the storage cascade.
	if err := repo.Delete(ctx, menu.Id); err != nil {
		return err
	}

	s.afterMutation(ctx, events.MenuDeleted, menu, nil)
	return nil
}

func (s *menuService) Move(ctx context.Context, id uuid.UUID, req *dto.MoveMenuRequest) (res *dto.MenuResponse, err error) {
	defer func() { s.metrics.ObserveOperation("move", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MenuRepository()

	menu, err := s.findExisting(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	oldDepth := menu.Depth

	if req.NewParentId.Set {
		if req.NewParentId.Value != nil {
			parent, err := s.findParent(ctx, repo, *req.NewParentId.Value)
			if err != nil {
				return nil, err
			}
			if err := s.ensureNotCircular(ctx, repo, menu.Id, parent.Id); err != nil {
				return nil, err
			}
			menu.ParentId = copyID(&parent.Id)
			menu.Depth = parent.Depth + 1
		} else {
			menu.ParentId = nil
			menu.Depth = 0
		}
	}

	if req.NewOrder != nil {
		menu.Order = *req.NewOrder
	}
	menu.UpdatedAt = s.now()

	cascaded, err := s.save(ctx, uow, menu, oldDepth)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, events.MenuMoved, menu, map[string]interface{}{
		"order":               menu.Order,
		"depth":               menu.Depth,
		"descendants_updated": cascaded,
	})

	return s.mapper.ToResponse(menu), nil
}

func (s *menuService) Reorder(ctx context.Context, id uuid.UUID, order int) (res *dto.MenuResponse, err error) {
	defer func() { s.metrics.ObserveOperation("reorder", err) }()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MenuRepository()

	menu, err := s.findExisting(ctx, repo, id)
	if err != nil {
		return nil, err
	}

	menu.Order = order
	menu.UpdatedAt = s.now()

	if err := repo.Update(ctx, menu); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, events.MenuReordered, menu, map[string]interface{}{
		"order": menu.Order,
	})

	return s.mapper.ToResponse(menu), nil
}

func (s *menuService) findExisting(ctx context.Context, repo contract.MenuRepository, id uuid.UUID) (*entity.Menu, error) {
	menu, err := repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, apperror.NotFound(fmt.Sprintf("Menu with ID %s not found", id))
	}
	return menu, nil
}

func (s *menuService) findParent(ctx context.Context, repo contract.MenuRepository, id uuid.UUID) (*entity.Menu, error) {
	parent, err := repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperror.NotFound(fmt.Sprintf("Parent menu with ID %s not found", id))
	}
	return parent, nil
}

// ensureNotCircular walks up from proposedParentId and fails if it reaches candidateId.
// A node seen twice means the stored hierarchy already holds a cycle.
func (s *menuService) ensureNotCircular(ctx context.Context, repo contract.MenuRepository, candidateId, proposedParentId uuid.UUID) error {
	visited := make(map[uuid.UUID]struct{})
	current := &proposedParentId

	for current != nil {
		if *current == candidateId {
			return apperror.InvalidOperation("Cannot move menu to its own descendant (circular reference)")
		}
		if _, seen := visited[*current]; seen {
			s.logger.Error("MENU", "Cycle detected in stored menu hierarchy", map[string]interface{}{
				"menu_id":   candidateId.String(),
				"parent_id": proposedParentId.String(),
				"revisited": current.String(),
			})
			return apperror.InvalidOperation("Menu hierarchy is corrupted: cycle detected above the target parent")
		}
		visited[*current] = struct{}{}

		node, err := repo.FindOne(ctx, *current)
		if err != nil {
			return err
		}
		if node == nil {
			return nil
		}
		current = node.ParentId
	}
	return nil
}

// save persists menu and, when enabled and its depth changed, shifts every
// descendant's depth in the same transaction. It returns the number of
// descendants rewritten.
func (s *menuService) save(ctx context.Context, uow unitofwork.UnitOfWork, menu *entity.Menu, oldDepth int) (int, error) {
	if !s.opts.CascadeDepth || menu.Depth == oldDepth {
		return 0, uow.MenuRepository().Update(ctx, menu)
	}

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	repo := uow.MenuRepository()
	if err := repo.Update(ctx, menu); err != nil {
		return 0, err
	}

	type pending struct {
		id    uuid.UUID
		depth int
	}
	updated := 0
	visited := map[uuid.UUID]struct{}{menu.Id: {}}
	queue := []pending{{id: menu.Id, depth: menu.Depth}}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		children, err := repo.FindChildren(ctx, &next.id)
		if err != nil {
			return 0, err
		}
		for _, child := range children {
			if _, seen := visited[child.Id]; seen {
				continue
			}
			visited[child.Id] = struct{}{}

			depth := next.depth + 1
			if child.Depth != depth {
				if err := repo.UpdateDepth(ctx, child.Id, depth); err != nil {
					return 0, err
				}
				updated++
			}
			queue = append(queue, pending{id: child.Id, depth: depth})
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}
	return updated, nil
}

// afterMutation runs once a write has been applied. Neither step can fail the operation.
func (s *menuService) afterMutation(ctx context.Context, eventType string, menu *entity.Menu, extra map[string]interface{}) {
	s.invalidateTreeCache(ctx)

	s.logger.Info("MENU", "Menu hierarchy changed", map[string]interface{}{
		"event":   eventType,
		"menu_id": menu.Id.String(),
	})

	if s.publisherService == nil {
		return
	}
	if err := s.publisherService.Publish(ctx, events.NewMenuEvent(eventType, menu.Id, menu.ParentId, extra)); err != nil {
		s.logger.Warn("EVENTS", "Failed to publish menu event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
