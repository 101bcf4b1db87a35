package models

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleCleaner    Role = "CLEANER"
	RoleHandyman   Role = "HANDYMAN"
	RoleContractor Role = "CONTRACTOR"
)

var Roles = []Role{RoleAdmin, RoleCleaner, RoleHandyman, RoleContractor}

func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if _, err := PermissionsFor(role); err != nil {
		return "", err
	}
	return role, nil
}

// Permission is the fixed capability record for a role. It is returned by
// value so holders cannot alter the table.
type Permission struct {
	ViewJobs          bool `json:"viewJobs"`
	UpdateStatus      bool `json:"updateStatus"`
	UploadMedia       bool `json:"uploadMedia"`
	AddComments       bool `json:"addComments"`
	ReportIssues      bool `json:"reportIssues"`
	AdjustInventory   bool `json:"adjustInventory"`
	CreateMaintenance bool `json:"createMaintenance"`
	ViewGuestDetails  bool `json:"viewGuestDetails"`
}

// PermissionsFor maps every known role to its capability record. A new role
// needs a case here before it can be onboarded.
func PermissionsFor(role Role) (Permission, error) {
	switch role {
	case RoleAdmin:
		return Permission{
			ViewJobs:          true,
			UpdateStatus:      true,
			UploadMedia:       true,
			AddComments:       true,
			ReportIssues:      true,
			AdjustInventory:   true,
			CreateMaintenance: true,
			ViewGuestDetails:  true,
		}, nil
	case RoleCleaner, RoleContractor:
		return Permission{
			ViewJobs:     true,
			UpdateStatus: true,
			UploadMedia:  true,
			AddComments:  true,
			ReportIssues: true,
		}, nil
	case RoleHandyman:
		return Permission{
			ViewJobs:          true,
			UpdateStatus:      true,
			UploadMedia:       true,
			AddComments:       true,
			ReportIssues:      true,
			CreateMaintenance: true,
		}, nil
	}

	return Permission{}, fmt.Errorf("%w: %q", ErrUnknownRole, string(role))
}

type Capability string

const (
	CapViewJobs          Capability = "viewJobs"
	CapUpdateStatus      Capability = "updateStatus"
	CapUploadMedia       Capability = "uploadMedia"
	CapAddComments       Capability = "addComments"
	CapReportIssues      Capability = "reportIssues"
	CapAdjustInventory   Capability = "adjustInventory"
	CapCreateMaintenance Capability = "createMaintenance"
	CapViewGuestDetails  Capability = "viewGuestDetails"
)

// Allows is a direct flag lookup. Unknown capabilities are denied.
func (p Permission) Allows(capability Capability) bool {
	switch capability {
	case CapViewJobs:
		return p.ViewJobs
	case CapUpdateStatus:
		return p.UpdateStatus
	case CapUploadMedia:
		return p.UploadMedia
	case CapAddComments:
		return p.AddComments
	case CapReportIssues:
		return p.ReportIssues
	case CapAdjustInventory:
		return p.AdjustInventory
	case CapCreateMaintenance:
		return p.CreateMaintenance
	case CapViewGuestDetails:
		return p.ViewGuestDetails
	}
	return false
}
