package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobNeedsCleaning JobStatus = "NEEDS_CLEANING"
	JobInProgress    JobStatus = "IN_PROGRESS"
	JobCompleted     JobStatus = "COMPLETED"
	JobCancelled     JobStatus = "CANCELLED"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobCancelled
}

func ParseJobStatus(value string) (JobStatus, error) {
	status := JobStatus(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case JobNeedsCleaning, JobInProgress, JobCompleted, JobCancelled:
		return status, nil
	}
	return "", Invalid("unknown job status %q", value)
}

type JobType string

const (
	JobTurnover    JobType = "TURNOVER"
	JobMaintenance JobType = "MAINTENANCE"
)

func ParseJobType(value string) (JobType, error) {
	jobType := JobType(strings.ToUpper(strings.TrimSpace(value)))
	switch jobType {
	case JobTurnover, JobMaintenance:
		return jobType, nil
	}
	return "", Invalid("unknown job type %q", value)
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// ParsePriority treats an empty value as the default for new jobs.
func ParsePriority(value string, fallback Priority) (Priority, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	priority := Priority(strings.ToUpper(strings.TrimSpace(value)))
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return priority, nil
	}
	return "", Invalid("unknown priority %q", value)
}

type ChecklistItem struct {
	ID          uuid.UUID  `json:"id"`
	Label       string     `json:"label"`
	Required    bool       `json:"required"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	IssueID     *uuid.UUID `json:"issueId,omitempty"`
}

func (i *ChecklistItem) IsDone() bool {
	return i.CompletedAt != nil
}

type ChecklistTemplateItem struct {
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

var DefaultTurnoverChecklist = []ChecklistTemplateItem{
	{Label: "Launder all linen and towels", Required: true},
	{Label: "Deep clean kitchen and surfaces", Required: true},
	{Label: "Refill toiletries and consumables", Required: true},
	{Label: "Vacuum and mop all floors", Required: true},
	{Label: "Check for maintenance issues", Required: false},
}

var DefaultMaintenanceChecklist = []ChecklistTemplateItem{
	{Label: "Resolve reported issue", Required: true},
}

// ChecklistTemplate is the master checklist copied into every new job of its
// type. Editing it never touches jobs that already exist.
type ChecklistTemplate struct {
	JobType   JobType                                   `gorm:"type:text;primaryKey" json:"jobType"`
	Items     datatypes.JSONSlice[ChecklistTemplateItem] `gorm:"not null"             json:"items"`
	UpdatedAt time.Time                                 `gorm:"autoUpdateTime"       json:"updatedAt"`
}

func NewChecklistTemplate(jobType JobType, items []ChecklistTemplateItem) ChecklistTemplate {
	return ChecklistTemplate{
		JobType: jobType,
		Items:   slices.Clone(items),
	}
}

// Validate rejects an empty template or one with blank labels.
func (t *ChecklistTemplate) Validate() error {
	if len(t.Items) == 0 {
		return Invalid("checklist template needs at least one item")
	}
	for i := range t.Items {
		t.Items[i].Label = strings.TrimSpace(t.Items[i].Label)
		if t.Items[i].Label == "" {
			return Invalid("checklist item %d has no label", i+1)
		}
	}
	return nil
}

// NewChecklist copies a template, giving every item a fresh id.
func NewChecklist(template []ChecklistTemplateItem) []ChecklistItem {
	checklist := make([]ChecklistItem, len(template))
	for i, item := range template {
		checklist[i] = ChecklistItem{
			ID:       uuid.New(),
			Label:    item.Label,
			Required: item.Required,
		}
	}
	return checklist
}

type Job struct {
	BaseUUIDModel
	PropertyID   uuid.UUID                          `gorm:"type:text;not null;index" json:"propertyId"`
	BookingID    *uuid.UUID                         `gorm:"type:text;index"          json:"bookingId,omitempty"`
	Type         JobType                            `gorm:"type:text;not null"       json:"type"`
	Status       JobStatus                          `gorm:"type:text;not null;index" json:"status"`
	Priority     Priority                           `gorm:"type:text;not null"       json:"priority"`
	AssignedTo   datatypes.JSONSlice[uuid.UUID]     `json:"assignedTo"`
	Deadline     time.Time                          `gorm:"not null;index"           json:"deadline"`
	Checklist    datatypes.JSONSlice[ChecklistItem] `json:"checklist"`
	MediaURLs    datatypes.JSONSlice[string]        `json:"mediaUrls"`
	Notes        string                             `json:"notes"`
	CompletedAt  *time.Time                         `json:"completedAt,omitempty"`
	CancelledAt  *time.Time                         `json:"cancelledAt,omitempty"`
	CancelReason string                             `json:"cancelReason,omitempty"`
	// Revision increments on every stored write.
	Revision int `gorm:"not null;default:0" json:"revision"`
}

func (j *Job) IsOverdue(now time.Time) bool {
	return now.After(j.Deadline) && !j.Status.IsTerminal()
}

func (j *Job) IsAssignedTo(userID uuid.UUID) bool {
	return slices.Contains(j.AssignedTo, userID)
}

// MissingRequiredItems lists required items without a completion stamp, in
// checklist order.
func (j *Job) MissingRequiredItems() []uuid.UUID {
	var missing []uuid.UUID
	for _, item := range j.Checklist {
		if item.Required && !item.IsDone() {
			missing = append(missing, item.ID)
		}
	}
	return missing
}

func (j *Job) FindChecklistItem(itemID uuid.UUID) (*ChecklistItem, error) {
	for i := range j.Checklist {
		if j.Checklist[i].ID == itemID {
			return &j.Checklist[i], nil
		}
	}
	return nil, NotFound("checklist item", itemID)
}

type JobStats struct {
	NeedsCleaning int `json:"needsCleaning"`
	InProgress    int `json:"inProgress"`
	Completed     int `json:"completed"`
	Cancelled     int `json:"cancelled"`
	Overdue       int `json:"overdue"`
}

func ComputeJobStats(jobs []*Job, now time.Time) JobStats {
	var stats JobStats
	for _, job := range jobs {
		switch job.Status {
		case JobNeedsCleaning:
			stats.NeedsCleaning++
		case JobInProgress:
			stats.InProgress++
		case JobCompleted:
			stats.Completed++
		case JobCancelled:
			stats.Cancelled++
		}
		if job.IsOverdue(now) {
			stats.Overdue++
		}
	}
	return stats
}
