package userController

import (
	"context"
	"testing"

	"luminaops/internal/database"
	"luminaops/internal/events"
	. "luminaops/internal/models"
	"luminaops/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

func newController(t *testing.T) (UserControllerInterface, *events.EventBus) {
	bus := events.New(nil)
	return New(repositories.New(newTestDB(t)), bus), bus
}

func TestOnboard(t *testing.T) {
	rate := decimal.RequireFromString("45.50")
	tooHigh := decimal.NewFromInt(6)
	whatsApp := "+447700900000"

	tests := []struct {
		name    string
		request OnboardUserRequest
		wantErr error
		check   func(t *testing.T, user *User)
	}{
		{
			name: "handyman gets maintenance flag",
			request: OnboardUserRequest{
				Name:      "Hank",
				Email:     "Hank@Example.com",
				Role:      "handyman",
				WhatsApp:  &whatsApp,
				TradeTags: []string{" Plumbing ", "", "Electrical"},
				Rate:      &rate,
			},
			check: func(t *testing.T, user *User) {
				assert.Equal(t, RoleHandyman, user.Role)
				assert.Equal(t, "hank@example.com", user.Email)
				assert.True(t, user.Permissions.CreateMaintenance)
				assert.False(t, user.Permissions.AdjustInventory)
				assert.Equal(t, []string{"plumbing", "electrical"}, user.TradeTags)
				assert.True(t, user.Active)
				require.NotNil(t, user.Rate)
				assert.True(t, rate.Equal(*user.Rate))
			},
		},
		{
			name:    "unknown role",
			request: OnboardUserRequest{Name: "Pat", Email: "pat@example.com", Role: "gardener"},
			wantErr: ErrUnknownRole,
		},
		{
			name:    "bad email",
			request: OnboardUserRequest{Name: "Pat", Email: "not-an-email", Role: "cleaner"},
			wantErr: ErrValidation,
		},
		{
			name:    "missing name",
			request: OnboardUserRequest{Email: "pat@example.com", Role: "cleaner"},
			wantErr: ErrValidation,
		},
		{
			name:    "score out of range",
			request: OnboardUserRequest{Name: "Pat", Email: "pat@example.com", Role: "cleaner", Score: &tooHigh},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, bus := newController(t)
			defer bus.Close()

			user, err := controller.Onboard(context.Background(), tt.request)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, user)
		})
	}
}

func TestOnboardDuplicateEmail(t *testing.T) {
	controller, bus := newController(t)
	defer bus.Close()
	ctx := context.Background()

	_, err := controller.Onboard(ctx, OnboardUserRequest{Name: "A", Email: "same@example.com", Role: "cleaner"})
	require.NoError(t, err)

	_, err = controller.Onboard(ctx, OnboardUserRequest{Name: "B", Email: "SAME@example.com", Role: "cleaner"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeactivate(t *testing.T) {
	controller, bus := newController(t)
	defer bus.Close()
	ctx := context.Background()

	admin, err := controller.Onboard(ctx, OnboardUserRequest{Name: "Ada", Email: "ada@example.com", Role: "admin"})
	require.NoError(t, err)
	cleaner, err := controller.Onboard(ctx, OnboardUserRequest{Name: "Cleo", Email: "cleo@example.com", Role: "cleaner"})
	require.NoError(t, err)

	_, err = controller.Deactivate(ctx, cleaner, admin.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = controller.Deactivate(ctx, admin, admin.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = controller.Deactivate(ctx, admin, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	deactivated, err := controller.Deactivate(ctx, admin, cleaner.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
	assert.False(t, deactivated.Can(CapViewJobs))

	users, err := controller.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestPermissions(t *testing.T) {
	controller, bus := newController(t)
	defer bus.Close()

	permissions, err := controller.Permissions("contractor")
	require.NoError(t, err)
	assert.True(t, permissions.ReportIssues)
	assert.False(t, permissions.ViewGuestDetails)

	_, err = controller.Permissions("OWNER")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
