package propertyController

import (
	"context"
	"testing"
	"time"

	"luminaops/internal/database"
	. "luminaops/internal/models"
	"luminaops/internal/repositories"

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

func actor(role Role) *User {
	permissions, _ := PermissionsFor(role)
	return &User{
		BaseUUIDModel: NewBaseUUIDModel(time.Now()),
		Role:          role,
		Permissions:   permissions,
		Active:        true,
	}
}

func TestCreateProperty(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	controller := New(repositories.New(db), db)
	admin := actor(RoleAdmin)

	detail, err := controller.CreateProperty(ctx, admin, CreatePropertyRequest{
		Name:    " Harbour Loft ",
		Address: "1 Quay Street",
		Consumables: []ConsumableRequest{
			{Name: "Toilet Roll", Category: "Linen", ParLevel: 12, CurrentCount: 4},
			{Name: "Coffee Pods", Category: "Consumables", ParLevel: 20, CurrentCount: 25},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Harbour Loft", detail.Name)
	assert.Equal(t, map[string]int{"Toilet Roll": 12, "Coffee Pods": 20}, detail.ParLevels)
	require.Len(t, detail.Inventory, 2)
	assert.True(t, detail.Inventory[0].IsLow)
	assert.False(t, detail.Inventory[1].IsLow)
	assert.Equal(t, float64(100), detail.Inventory[1].UtilizationPercent)

	fetched, err := controller.GetProperty(ctx, detail.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Inventory, 2)

	properties, err := controller.List(ctx)
	require.NoError(t, err)
	assert.Len(t, properties, 1)
}

func TestCreatePropertyValidation(t *testing.T) {
	tests := []struct {
		name    string
		actor   *User
		request CreatePropertyRequest
		wantErr error
	}{
		{
			name:    "staff cannot onboard properties",
			actor:   actor(RoleCleaner),
			request: CreatePropertyRequest{Name: "Loft"},
			wantErr: ErrForbidden,
		},
		{
			name:    "name required",
			actor:   actor(RoleAdmin),
			request: CreatePropertyRequest{},
			wantErr: ErrValidation,
		},
		{
			name:  "duplicate consumable",
			actor: actor(RoleAdmin),
			request: CreatePropertyRequest{
				Name: "Loft",
				Consumables: []ConsumableRequest{
					{Name: "Towels", ParLevel: 4},
					{Name: "Towels ", ParLevel: 6},
				},
			},
			wantErr: ErrValidation,
		},
		{
			name:  "negative par level",
			actor: actor(RoleAdmin),
			request: CreatePropertyRequest{
				Name:        "Loft",
				Consumables: []ConsumableRequest{{Name: "Towels", ParLevel: -1}},
			},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			controller := New(repositories.New(db), db)

			_, err := controller.CreateProperty(context.Background(), tt.actor, tt.request)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetPropertyNotFound(t *testing.T) {
	db := newTestDB(t)
	controller := New(repositories.New(db), db)

	_, err := controller.GetProperty(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
