package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"menu-tree-be/internal/dto"
	"menu-tree-be/internal/model"
	"menu-tree-be/internal/pkg/logger"
	"menu-tree-be/internal/repository/unitofwork"
	"menu-tree-be/internal/service"
	"menu-tree-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormMenuLifecycle(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	driver := os.Getenv("DB_DRIVER")
	if driver == "" || driver == database.DriverMemory {
		driver = database.DriverPostgres
	}

	gormDB, err := database.NewGormDB(driver, dsn, "silent")
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, gormDB.AutoMigrate(&model.Menu{}))

	ctx := context.Background()
	require.NoError(t, database.Ping(ctx, gormDB))

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	countMenus := func() int64 {
		count, err := uowFactory.NewUnitOfWork(ctx).MenuRepository().Count(ctx)
		require.NoError(t, err)
		return count
	}
	before := countMenus()

	svc := service.NewMenuService(uowFactory, nil, nil, nil, logger.NewNopLogger(), service.MenuServiceOptions{CascadeDepth: true})

	root, err := svc.Create(ctx, &dto.CreateMenuRequest{Name: "integration.root"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, &dto.CreateMenuRequest{Name: "integration.child", ParentId: &root.Id})
	require.NoError(t, err)
	assert.Equal(t, 1, child.Depth)
	assert.Equal(t, before+2, countMenus())

	t.Run("Move child to root level", func(t *testing.T) {
		moved, err := svc.Move(ctx, child.Id, &dto.MoveMenuRequest{NewParentId: dto.NewOptionalUUID(nil)})
		require.NoError(t, err)
		assert.Nil(t, moved.ParentId)
		assert.Equal(t, 0, moved.Depth)

		_, err = svc.Move(ctx, child.Id, &dto.MoveMenuRequest{NewParentId: dto.NewOptionalUUID(&root.Id)})
		require.NoError(t, err)
	})

	t.Run("Delete cascades to children", func(t *testing.T) {
		require.NoError(t, svc.Remove(ctx, root.Id))
		assert.Equal(t, before, countMenus())
	})
}
