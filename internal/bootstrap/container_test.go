package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"menu-tree-be/internal/config"
	"menu-tree-be/internal/dto"
	"menu-tree-be/internal/repository/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, driver string) *config.Config {
	return &config.Config{
		App:      config.AppConfig{Environment: "test", LogFilePath: filepath.Join(t.TempDir(), "app.log")},
		Database: config.DatabaseConfig{Driver: driver},
		Cache:    config.CacheConfig{Driver: "none"},
		Events:   config.EventsConfig{Topic: "MENU_EVENTS"},
	}
}

func TestNewContainerWithMemoryStore(t *testing.T) {
	c, err := NewContainer(nil, testConfig(t, "memory"))
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.NotNil(t, c.MenuController)
	assert.NotNil(t, c.HealthController)
	assert.NotNil(t, c.ConsumerService)
	assert.NotNil(t, c.WebSocketHub)

	ctx := context.Background()
	created, err := c.MenuService.Create(ctx, &dto.CreateMenuRequest{Name: "Systems"})
	require.NoError(t, err)

	got, err := c.MenuService.FindOne(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Systems", got.Name)
}

func TestNewContainerRequiresConnectionForSQLDrivers(t *testing.T) {
	_, err := NewContainer(nil, testConfig(t, "postgres"))
	assert.Error(t, err)
}

func TestNewTreeCacheByDriver(t *testing.T) {
	assert.IsType(t, cache.NewNoopTreeCache(), newTreeCache(config.CacheConfig{Driver: "none"}, nil))
	assert.IsType(t, cache.NewMemoryTreeCache(cache.DefaultTTL), newTreeCache(config.CacheConfig{Driver: "memory"}, nil))
}
