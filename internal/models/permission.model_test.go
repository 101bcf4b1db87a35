package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected Permission
	}{
		{
			name: "Admin has every capability",
			role: RoleAdmin,
			expected: Permission{
				ViewJobs: true, UpdateStatus: true, UploadMedia: true, AddComments: true,
				ReportIssues: true, AdjustInventory: true, CreateMaintenance: true, ViewGuestDetails: true,
			},
		},
		{
			name: "Cleaner cannot adjust inventory",
			role: RoleCleaner,
			expected: Permission{
				ViewJobs: true, UpdateStatus: true, UploadMedia: true, AddComments: true,
				ReportIssues: true,
			},
		},
		{
			name: "Handyman can create maintenance",
			role: RoleHandyman,
			expected: Permission{
				ViewJobs: true, UpdateStatus: true, UploadMedia: true, AddComments: true,
				ReportIssues: true, CreateMaintenance: true,
			},
		},
		{
			name: "Contractor matches cleaner",
			role: RoleContractor,
			expected: Permission{
				ViewJobs: true, UpdateStatus: true, UploadMedia: true, AddComments: true,
				ReportIssues: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permissions, err := PermissionsFor(tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, permissions)
		})
	}
}

func TestPermissionsFor_AdjustInventory(t *testing.T) {
	cleaner, err := PermissionsFor(RoleCleaner)
	require.NoError(t, err)
	admin, err := PermissionsFor(RoleAdmin)
	require.NoError(t, err)

	assert.False(t, cleaner.AdjustInventory)
	assert.True(t, admin.AdjustInventory)
}

func TestPermissionsFor_UnknownRole(t *testing.T) {
	_, err := PermissionsFor(Role("GARDENER"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestPermissionsFor_EveryRoleDefined(t *testing.T) {
	for _, role := range Roles {
		_, err := PermissionsFor(role)
		assert.NoError(t, err, "role %s has no permission entry", role)
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" handyman ")
	require.NoError(t, err)
	assert.Equal(t, RoleHandyman, role)

	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestPermission_Allows(t *testing.T) {
	handyman, err := PermissionsFor(RoleHandyman)
	require.NoError(t, err)

	assert.True(t, handyman.Allows(CapCreateMaintenance))
	assert.False(t, handyman.Allows(CapAdjustInventory))
	assert.False(t, handyman.Allows(CapViewGuestDetails))
	assert.False(t, handyman.Allows(Capability("deleteEverything")))
}

func TestUser_Can(t *testing.T) {
	permissions, err := PermissionsFor(RoleAdmin)
	require.NoError(t, err)

	user := &User{Role: RoleAdmin, Permissions: permissions, Active: true}
	assert.True(t, user.Can(CapAdjustInventory))

	user.Active = false
	assert.False(t, user.Can(CapViewJobs), "inactive users have no capabilities")
}
