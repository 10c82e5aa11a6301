package memory

import (
	"context"
	"fmt"

	"menu-tree-be/internal/repository/contract"
	"menu-tree-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// unitOfWork gives the in-memory store transaction semantics with a per-row
// undo log. Rollback restores only the rows written through this unit of work.
type unitOfWork struct {
	store  *MenuStore
	before map[uuid.UUID]*storedMenu
	active bool
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.before = make(map[uuid.UUID]*storedMenu)
	u.active = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.before = nil
	u.active = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.undo(u.before)
	u.before = nil
	u.active = false
	return nil
}

func (u *unitOfWork) MenuRepository() contract.MenuRepository {
	return &menuRepository{store: u.store, tx: u}
}

type repositoryFactory struct {
	store *MenuStore
}

func NewRepositoryFactory(store *MenuStore) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}
