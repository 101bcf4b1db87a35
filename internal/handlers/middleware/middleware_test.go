package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"luminaops/config"
	"luminaops/internal/database"
	"luminaops/internal/models"
	"luminaops/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupApp(t *testing.T, handlers ...fiber.Handler) (*fiber.App, map[models.Role]*models.User) {
	t.Helper()

	repos := repositories.New(newTestDB(t))
	m := New(config.Config{}, repos)

	users := make(map[models.Role]*models.User)
	for _, role := range models.Roles {
		permissions, err := models.PermissionsFor(role)
		require.NoError(t, err)
		user := &models.User{
			BaseUUIDModel: models.NewBaseUUIDModel(time.Now()),
			Name:          string(role),
			Email:         string(role) + "@luminaops.test",
			Role:          role,
			Permissions:   permissions,
			Active:        true,
		}
		require.NoError(t, repos.User.Create(context.Background(), user))
		users[role] = user
	}

	app := fiber.New()
	chain := append([]fiber.Handler{m.TraceID(), m.RequireUser()}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.SendString(GetUser(c).Name)
	})
	app.Get("/", chain...)

	return app, users
}

func TestRequireUser(t *testing.T) {
	app, users := setupApp(t)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", wantStatus: fiber.StatusUnauthorized},
		{name: "malformed header", header: "abc", wantStatus: fiber.StatusUnauthorized},
		{name: "unknown user", header: uuid.NewString(), wantStatus: fiber.StatusUnauthorized},
		{name: "known user", header: users[models.RoleCleaner].ID.String(), wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(TraceIDHeader))
		})
	}
}

func TestTraceIDIsEchoed(t *testing.T) {
	app, users := setupApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, users[models.RoleAdmin].ID.String())
	req.Header.Set(TraceIDHeader, "trace-123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "trace-123", resp.Header.Get(TraceIDHeader))
}

func TestRequirePermission(t *testing.T) {
	m := New(config.Config{}, repositories.New(newTestDB(t)))
	app, users := setupApp(t, m.RequirePermission(models.CapAdjustInventory))

	tests := []struct {
		role       models.Role
		wantStatus int
	}{
		{role: models.RoleAdmin, wantStatus: fiber.StatusOK},
		{role: models.RoleCleaner, wantStatus: fiber.StatusForbidden},
		{role: models.RoleHandyman, wantStatus: fiber.StatusForbidden},
		{role: models.RoleContractor, wantStatus: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			req.Header.Set(UserIDHeader, users[tt.role].ID.String())

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	m := New(config.Config{}, repositories.New(newTestDB(t)))
	app, users := setupApp(t, m.RequireAdmin())

	for role, wantStatus := range map[models.Role]int{
		models.RoleAdmin:    fiber.StatusOK,
		models.RoleHandyman: fiber.StatusForbidden,
	} {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(UserIDHeader, users[role].ID.String())

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, wantStatus, resp.StatusCode, role)
	}
}
