package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"menu-tree-be/internal/dto"
	"menu-tree-be/internal/pkg/apperror"
	"menu-tree-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", apperror.NotFound("Menu with ID x not found"), 404, "Menu with ID x not found"},
		{"invalid operation", apperror.InvalidOperation("circular"), 400, "circular"},
		{"fiber error", fiber.NewError(fiber.StatusUnprocessableEntity, "bad content type"), 422, "bad content type"},
		{"storage error", errors.New("connection reset"), 500, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrorHandlerMiddlewareWritesEnvelope(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperror.NotFound("Menu with ID 1 not found")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("Success", fiber.Map{"id": 1}))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["code"])
	assert.Equal(t, "Menu with ID 1 not found", body["message"])
	assert.Nil(t, body["data"])

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

type sample struct {
	Name string  `json:"name" validate:"required,max=5"`
	Url  *string `json:"url" validate:"omitempty,max=3"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Name: "ok"}))

	err := ValidateRequest(sample{})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 400, fe.Code)
	assert.Equal(t, "name is required", fe.Message)

	long := "/toolong"
	err = ValidateRequest(sample{Name: "toolong", Url: &long})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "name must be at most 5 characters; url must be at most 3 characters", fe.Message)
}

func TestValidateRequestOptionalString(t *testing.T) {
	ok := "/a"

	assert.NoError(t, ValidateRequest(dto.UpdateMenuRequest{}))
	assert.NoError(t, ValidateRequest(dto.UpdateMenuRequest{Url: dto.NewOptionalString(nil)}))
	assert.NoError(t, ValidateRequest(dto.UpdateMenuRequest{Url: dto.NewOptionalString(&ok)}))

	tooLong := strings.Repeat("x", 101)
	err := ValidateRequest(dto.UpdateMenuRequest{Icon: dto.NewOptionalString(&tooLong)})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "icon must be at most 100 characters", fe.Message)
}
