package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"menu-tree-be/internal/entity"
	"menu-tree-be/internal/repository/contract"

	"github.com/google/uuid"
)

type storedMenu struct {
	menu *entity.Menu
	seq  uint64
}

// MenuStore is a process-local table of menu rows. It emulates the SQL
// foreign key: deleting a row deletes every row below it.
type MenuStore struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]*storedMenu
	seq  uint64
	now  func() time.Time
}

func NewMenuStore() *MenuStore {
	return &MenuStore{
		rows: make(map[uuid.UUID]*storedMenu),
		now:  time.Now,
	}
}

// undo puts back the before-image of every row a transaction touched.
// Rows it never touched are left as they are.
func (s *MenuStore) undo(before map[uuid.UUID]*storedMenu) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range before {
		if row == nil {
			delete(s.rows, id)
			continue
		}
		s.rows[id] = row
	}
}

// sortedLocked returns copies ordered by Order, then insertion sequence.
func (s *MenuStore) sortedLocked(keep func(*entity.Menu) bool) []*entity.Menu {
	rows := make([]*storedMenu, 0, len(s.rows))
	for _, row := range s.rows {
		if keep == nil || keep(row.menu) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].menu.Order != rows[j].menu.Order {
			return rows[i].menu.Order < rows[j].menu.Order
		}
		return rows[i].seq < rows[j].seq
	})
	out := make([]*entity.Menu, len(rows))
	for i, row := range rows {
		out[i] = row.menu.Clone()
	}
	return out
}

type menuRepository struct {
	store *MenuStore
	// tx records before-images while its transaction is open; nil outside a UoW.
	tx *unitOfWork
}

func NewMenuRepository(store *MenuStore) contract.MenuRepository {
	return &menuRepository{store: store}
}

// rememberLocked must be called with the store lock held, before id is written.
func (r *menuRepository) rememberLocked(id uuid.UUID) {
	if r.tx == nil || !r.tx.active {
		return
	}
	if _, seen := r.tx.before[id]; seen {
		return
	}
	if row, ok := r.store.rows[id]; ok {
		r.tx.before[id] = &storedMenu{menu: row.menu.Clone(), seq: row.seq}
		return
	}
	r.tx.before[id] = nil
}

func (r *menuRepository) Create(ctx context.Context, menu *entity.Menu) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if menu.Id == uuid.Nil {
		menu.Id = uuid.New()
	}
	if _, exists := s.rows[menu.Id]; exists {
		return ErrDuplicateKey
	}
	if menu.ParentId != nil {
		if _, ok := s.rows[*menu.ParentId]; !ok {
			return ErrForeignKey
		}
	}
	r.rememberLocked(menu.Id)
	now := s.now()
	if menu.CreatedAt.IsZero() {
		menu.CreatedAt = now
	}
	menu.UpdatedAt = now
	s.seq++
	s.rows[menu.Id] = &storedMenu{menu: menu.Clone(), seq: s.seq}
	return nil
}

func (r *menuRepository) Update(ctx context.Context, menu *entity.Menu) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[menu.Id]
	if !ok {
		return ErrRowMissing
	}
	if menu.ParentId != nil {
		if _, ok := s.rows[*menu.ParentId]; !ok {
			return ErrForeignKey
		}
	}
	r.rememberLocked(menu.Id)
	menu.UpdatedAt = s.now()
	row.menu = menu.Clone()
	return nil
}

func (r *menuRepository) UpdateDepth(ctx context.Context, id uuid.UUID, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.rows[id]; ok {
		r.rememberLocked(id)
		row.menu.Depth = depth
		row.menu.UpdatedAt = s.now()
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return nil
	}
	children := make(map[uuid.UUID][]uuid.UUID, len(s.rows))
	for rowID, row := range s.rows {
		if row.menu.ParentId != nil {
			children[*row.menu.ParentId] = append(children[*row.menu.ParentId], rowID)
		}
	}
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, ok := s.rows[current]; !ok {
			continue
		}
		r.rememberLocked(current)
		delete(s.rows, current)
		queue = append(queue, children[current]...)
	}
	return nil
}

func (r *menuRepository) FindOne(ctx context.Context, id uuid.UUID) (*entity.Menu, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return row.menu.Clone(), nil
}

func (r *menuRepository) FindAll(ctx context.Context) ([]*entity.Menu, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(nil), nil
}

func (r *menuRepository) FindChildren(ctx context.Context, parentId *uuid.UUID) ([]*entity.Menu, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(m *entity.Menu) bool { return sameParent(m.ParentId, parentId) }), nil
}

func (r *menuRepository) MaxSiblingOrder(ctx context.Context, parentId *uuid.UUID) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	highest, found := 0, false
	for _, row := range s.rows {
		if !sameParent(row.menu.ParentId, parentId) {
			continue
		}
		if !found || row.menu.Order > highest {
			highest, found = row.menu.Order, true
		}
	}
	return highest, found, nil
}

func (r *menuRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
