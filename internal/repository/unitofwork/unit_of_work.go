package unitofwork

import (
	"context"

	"menu-tree-be/internal/repository/contract"
)

// RepositoryFactory hands out a fresh UnitOfWork per service call.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MenuRepository() contract.MenuRepository
}
