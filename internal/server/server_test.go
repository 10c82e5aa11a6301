package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"menu-tree-be/internal/bootstrap"
	"menu-tree-be/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:3000",
		},
		Database: config.DatabaseConfig{Driver: "memory"},
		Cache:    config.CacheConfig{Driver: "memory", TTLSeconds: 60},
		Menu:     config.MenuConfig{CascadeDepth: true},
		Events:   config.EventsConfig{Topic: "MENU_EVENTS"},
	}

	container, err := bootstrap.NewContainer(nil, cfg)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	return New(cfg, container)
}

func TestRoutesAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	app := srv.GetApp()

	req := httptest.NewRequest("POST", "/api/menus", bytes.NewBufferString(`{"name":"Systems"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			Id    string `json:"id"`
			Depth int    `json:"depth"`
		} `json:"data"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, 0, created.Data.Depth)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/menus/"+created.Data.Id, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/menus/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.True(t, strings.Contains(body, `menu_tree_operations_total{operation="create",result="success"} 1`), body)
	assert.True(t, strings.Contains(body, `route="/api/menus/:id"`), body)
}

func TestCorsPreflight(t *testing.T) {
	app := newTestServer(t).GetApp()

	req := httptest.NewRequest("OPTIONS", "/api/menus", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
