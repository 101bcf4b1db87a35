package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_IsOverdue(t *testing.T) {
	deadline := time.Date(2024, 10, 27, 15, 0, 0, 0, time.UTC)
	after := deadline.Add(time.Minute)
	before := deadline.Add(-time.Minute)

	tests := []struct {
		name     string
		status   JobStatus
		now      time.Time
		expected bool
	}{
		{name: "Needs cleaning past deadline", status: JobNeedsCleaning, now: after, expected: true},
		{name: "In progress past deadline", status: JobInProgress, now: after, expected: true},
		{name: "In progress before deadline", status: JobInProgress, now: before, expected: false},
		{name: "Exactly at deadline", status: JobInProgress, now: deadline, expected: false},
		{name: "Completed past deadline", status: JobCompleted, now: after, expected: false},
		{name: "Cancelled past deadline", status: JobCancelled, now: after, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &Job{Status: tt.status, Deadline: deadline}
			assert.Equal(t, tt.expected, job.IsOverdue(tt.now))
		})
	}
}

func TestNewChecklist(t *testing.T) {
	first := NewChecklist(DefaultTurnoverChecklist)
	second := NewChecklist(DefaultTurnoverChecklist)

	require.Len(t, first, 5)
	required := 0
	for i, item := range first {
		assert.Equal(t, DefaultTurnoverChecklist[i].Label, item.Label)
		assert.Nil(t, item.CompletedAt)
		assert.NotEqual(t, second[i].ID, item.ID, "each job gets its own item ids")
		if item.Required {
			required++
		}
	}
	assert.Equal(t, 4, required)
}

func TestJob_MissingRequiredItems(t *testing.T) {
	now := time.Now()
	job := &Job{Checklist: NewChecklist(DefaultTurnoverChecklist)}
	job.Checklist[0].CompletedAt = &now
	job.Checklist[2].CompletedAt = &now

	missing := job.MissingRequiredItems()

	assert.Equal(t, []uuid.UUID{job.Checklist[1].ID, job.Checklist[3].ID}, missing)
}

func TestChecklistTemplate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		items   []ChecklistTemplateItem
		wantErr bool
	}{
		{name: "default turnover", items: DefaultTurnoverChecklist},
		{name: "empty", items: nil, wantErr: true},
		{name: "blank label", items: []ChecklistTemplateItem{{Label: "Strip beds"}, {Label: "  "}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := NewChecklistTemplate(JobTurnover, tt.items)
			err := template.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewChecklistTemplate_CopiesItems(t *testing.T) {
	items := []ChecklistTemplateItem{{Label: " Strip beds ", Required: true}}

	template := NewChecklistTemplate(JobTurnover, items)
	items[0].Label = "changed"
	require.NoError(t, template.Validate())

	assert.Equal(t, "Strip beds", template.Items[0].Label)
}

func TestJob_FindChecklistItem(t *testing.T) {
	job := &Job{Checklist: NewChecklist(DefaultMaintenanceChecklist)}

	item, err := job.FindChecklistItem(job.Checklist[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Resolve reported issue", item.Label)

	_, err = job.FindChecklistItem(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComputeJobStats(t *testing.T) {
	now := time.Date(2024, 10, 28, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	jobs := []*Job{
		{Status: JobNeedsCleaning, Deadline: past},
		{Status: JobNeedsCleaning, Deadline: future},
		{Status: JobInProgress, Deadline: past},
		{Status: JobCompleted, Deadline: past},
		{Status: JobCancelled, Deadline: past},
	}

	stats := ComputeJobStats(jobs, now)

	assert.Equal(t, JobStats{NeedsCleaning: 2, InProgress: 1, Completed: 1, Cancelled: 1, Overdue: 2}, stats)
}

func TestParsePriority(t *testing.T) {
	priority, err := ParsePriority("", PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, priority)

	priority, err = ParsePriority("urgent", PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, priority)

	_, err = ParsePriority("whenever", PriorityHigh)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIncompleteChecklistError(t *testing.T) {
	id := uuid.New()
	err := &IncompleteChecklistError{MissingItemIDs: []uuid.UUID{id}}

	assert.Contains(t, err.Error(), id.String())
	assert.ErrorIs(t, ErrJobCompleted, ErrValidation)
}
