package jobController

import (
	"strings"
	"time"

	. "luminaops/internal/models"

	"github.com/google/uuid"
)

// The transitions below mutate a loaded job in memory. Each reports whether
// anything changed so the caller can skip a write for no-op requests.

func ensureOpen(job *Job) error {
	switch job.Status {
	case JobCompleted:
		return ErrJobCompleted
	case JobCancelled:
		return Invalid("job is cancelled and can no longer change")
	}
	return nil
}

func startJob(job *Job) (bool, error) {
	switch job.Status {
	case JobNeedsCleaning:
		job.Status = JobInProgress
		return true, nil
	case JobInProgress:
		return false, nil
	}
	return false, ErrInvalidTransition
}

func toggleChecklistItem(job *Job, itemID uuid.UUID, now time.Time) (bool, error) {
	if err := ensureOpen(job); err != nil {
		return false, err
	}

	item, err := job.FindChecklistItem(itemID)
	if err != nil {
		return false, err
	}

	if item.IsDone() {
		item.CompletedAt = nil
	} else {
		completedAt := now
		item.CompletedAt = &completedAt
	}

	if job.Status == JobNeedsCleaning {
		job.Status = JobInProgress
	}
	return true, nil
}

func attachMedia(job *Job, mediaRef string) (bool, error) {
	mediaRef = strings.TrimSpace(mediaRef)
	if mediaRef == "" {
		return false, Invalid("media reference is required")
	}
	if err := ensureOpen(job); err != nil {
		return false, err
	}

	job.MediaURLs = append(job.MediaURLs, mediaRef)
	return true, nil
}

func updateNotes(job *Job, notes string) (bool, error) {
	if err := ensureOpen(job); err != nil {
		return false, err
	}
	if job.Notes == notes {
		return false, nil
	}
	job.Notes = notes
	return true, nil
}

// completeJob checks the checklist before evidence so a job missing both
// reports the checklist first.
func completeJob(job *Job, now time.Time) (bool, error) {
	switch job.Status {
	case JobCompleted:
		return false, ErrJobCompleted
	case JobCancelled:
		return false, ErrInvalidTransition
	}

	if missing := job.MissingRequiredItems(); len(missing) > 0 {
		return false, &IncompleteChecklistError{MissingItemIDs: missing}
	}
	if len(job.MediaURLs) == 0 {
		return false, ErrMissingEvidence
	}

	completedAt := now
	job.Status = JobCompleted
	job.CompletedAt = &completedAt
	return true, nil
}

func cancelJob(job *Job, reason string, now time.Time) (bool, error) {
	switch job.Status {
	case JobCancelled:
		return false, nil
	case JobCompleted:
		return false, ErrInvalidTransition
	}

	cancelledAt := now
	job.Status = JobCancelled
	job.CancelledAt = &cancelledAt
	job.CancelReason = strings.TrimSpace(reason)
	return true, nil
}

func assignJob(job *Job, userIDs []uuid.UUID) (bool, error) {
	if job.Status.IsTerminal() {
		return false, ErrInvalidTransition
	}

	assignees := make([]uuid.UUID, 0, len(userIDs))
	seen := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		assignees = append(assignees, id)
	}

	job.AssignedTo = assignees
	return true, nil
}

func linkIssue(job *Job, itemID uuid.UUID, issueID uuid.UUID) error {
	item, err := job.FindChecklistItem(itemID)
	if err != nil {
		return err
	}
	linked := issueID
	item.IssueID = &linked
	return nil
}
