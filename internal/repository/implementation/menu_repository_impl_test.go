package implementation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var menuColumns = []string{"id", "name", "url", "icon", "sort_order", "is_active", "parent_id", "depth", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestFindAllOrdersBySortOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	rootID := uuid.New()
	childID := uuid.New()
	now := time.Now()
	url := "/systems"

	mock.ExpectQuery(`SELECT \* FROM "menus" ORDER BY sort_order ASC`).
		WillReturnRows(sqlmock.NewRows(menuColumns).
			AddRow(rootID.String(), "Systems", url, nil, 0, true, nil, 0, now, now).
			AddRow(childID.String(), "Menus", nil, nil, 1, false, rootID.String(), 1, now, now))

	menus, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, menus, 2)

	assert.Equal(t, rootID, menus[0].Id)
	assert.Nil(t, menus[0].ParentId)
	require.NotNil(t, menus[0].Url)
	assert.Equal(t, "/systems", *menus[0].Url)

	assert.Equal(t, childID, menus[1].Id)
	require.NotNil(t, menus[1].ParentId)
	assert.Equal(t, rootID, *menus[1].ParentId)
	assert.Equal(t, 1, menus[1].Order)
	assert.Equal(t, 1, menus[1].Depth)
	assert.False(t, menus[1].IsActive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOneReturnsNilWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "menus" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(menuColumns))

	menu, err := repo.FindOne(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, menu)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaxSiblingOrderForRoots(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "menus" WHERE parent_id IS NULL ORDER BY sort_order DESC`).
		WillReturnRows(sqlmock.NewRows(menuColumns).
			AddRow(uuid.New().String(), "Analytics", nil, nil, 3, true, nil, 0, now, now))

	order, found, err := repo.MaxSiblingOrder(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIssuesSingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "menus" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "menus"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOnMySQLRemovesDeepestLevelFirst(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := NewMenuRepository(db)

	rootID, childID, grandchildID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `menus` WHERE parent_id IN \\(\\?\\)").
		WithArgs(rootID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(childID.String()))
	mock.ExpectQuery("SELECT `id` FROM `menus` WHERE parent_id IN \\(\\?\\)").
		WithArgs(childID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(grandchildID.String()))
	mock.ExpectQuery("SELECT `id` FROM `menus` WHERE parent_id IN \\(\\?\\)").
		WithArgs(grandchildID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	for _, id := range []uuid.UUID{grandchildID, childID, rootID} {
		mock.ExpectExec("DELETE FROM `menus` WHERE id IN \\(\\?\\)").
			WithArgs(id.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), rootID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
