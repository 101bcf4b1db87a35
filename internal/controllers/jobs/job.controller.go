package jobController

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"luminaops/config"
	"luminaops/internal/database"
	"luminaops/internal/events"
	. "luminaops/internal/models"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type CreateTurnoverJobRequest struct {
	BookingID  uuid.UUID   `json:"bookingId"`
	Priority   string      `json:"priority"`
	AssignedTo []uuid.UUID `json:"assignedTo"`
}

type CreateMaintenanceJobRequest struct {
	PropertyID uuid.UUID   `json:"propertyId"`
	IssueID    *uuid.UUID  `json:"issueId,omitempty"`
	Priority   string      `json:"priority"`
	Deadline   time.Time   `json:"deadline"`
	Notes      string      `json:"notes"`
	AssignedTo []uuid.UUID `json:"assignedTo"`
}

type ReportIssueRequest struct {
	ItemID   *uuid.UUID `json:"itemId,omitempty"`
	Type     string     `json:"type"`
	ItemName string     `json:"itemName"`
	Comment  string     `json:"comment"`
	MediaURL string     `json:"mediaUrl"`
}

// AssigneeJobs is a staff member's work split by whether it still needs
// doing.
type AssigneeJobs struct {
	Open     []*Job `json:"open"`
	Finished []*Job `json:"finished"`
}

type JobControllerInterface interface {
	CreateTurnoverJob(ctx context.Context, request CreateTurnoverJobRequest) (*Job, error)
	CreateMaintenanceJob(ctx context.Context, actor *User, request CreateMaintenanceJobRequest) (*Job, error)
	Get(ctx context.Context, jobID uuid.UUID) (*Job, error)
	List(ctx context.Context, filter repositories.JobFilter) ([]*Job, error)
	ListForAssignee(ctx context.Context, user *User) (*AssigneeJobs, error)
	ListOverdue(ctx context.Context) ([]*Job, error)
	ListNotStarted(ctx context.Context) ([]*Job, error)
	ListDueSoon(ctx context.Context, within time.Duration) ([]*Job, error)
	Stats(ctx context.Context) (JobStats, error)
	Assign(ctx context.Context, actor *User, jobID uuid.UUID, userIDs []uuid.UUID) (*Job, error)
	Start(ctx context.Context, actor *User, jobID uuid.UUID) (*Job, error)
	ToggleChecklistItem(ctx context.Context, actor *User, jobID, itemID uuid.UUID) (*Job, error)
	AttachMedia(ctx context.Context, actor *User, jobID uuid.UUID, mediaRef string) (*Job, error)
	UpdateNotes(ctx context.Context, actor *User, jobID uuid.UUID, notes string) (*Job, error)
	Complete(ctx context.Context, actor *User, jobID uuid.UUID) (*Job, error)
	Cancel(ctx context.Context, actor *User, jobID uuid.UUID, reason string) (*Job, error)
	ReportIssue(ctx context.Context, actor *User, jobID uuid.UUID, request ReportIssueRequest) (*Issue, error)
	ListIssues(ctx context.Context, filter repositories.IssueFilter) ([]*Issue, error)
	ChecklistTemplate(ctx context.Context, jobType JobType) (*ChecklistTemplate, error)
	UpdateChecklistTemplate(
		ctx context.Context,
		actor *User,
		jobType JobType,
		items []ChecklistTemplateItem,
	) (*ChecklistTemplate, error)
}

type JobController struct {
	jobRepo       repositories.JobRepository
	bookingRepo   repositories.BookingRepository
	propertyRepo  repositories.PropertyRepository
	userRepo      repositories.UserRepository
	issueRepo     repositories.IssueRepository
	checklistRepo repositories.ChecklistRepository
	locks         *database.KeyedMutex
	eventBus      events.Publisher
	location      *time.Location
	now           func() time.Time
	log           logger.Logger
}

func New(
	repos repositories.Repository,
	eventBus events.Publisher,
	config config.Config,
	db database.DB,
) JobControllerInterface {
	return &JobController{
		jobRepo:       repos.Job,
		bookingRepo:   repos.Booking,
		propertyRepo:  repos.Property,
		userRepo:      repos.User,
		issueRepo:     repos.Issue,
		checklistRepo: repos.Checklist,
		locks:         db.Locks,
		eventBus:      eventBus,
		location:      config.Location(),
		now:           time.Now,
		log:           logger.New("jobController"),
	}
}

func (c *JobController) CreateTurnoverJob(
	ctx context.Context,
	request CreateTurnoverJobRequest,
) (*Job, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateTurnoverJob")

	priority, err := ParsePriority(request.Priority, PriorityMedium)
	if err != nil {
		return nil, err
	}

	booking, err := c.bookingRepo.GetByID(ctx, request.BookingID)
	if err != nil {
		return nil, err
	}

	property, err := c.propertyRepo.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, err
	}

	if err := c.checkAssignees(ctx, request.AssignedTo); err != nil {
		return nil, err
	}

	// one live turnover per booking
	unlock := c.locks.Lock("turnover:" + booking.ID.String())
	defer unlock()

	existing, err := c.jobRepo.List(ctx, repositories.JobFilter{PropertyID: &booking.PropertyID})
	if err != nil {
		return nil, log.Err("failed to list property jobs", err, "propertyID", booking.PropertyID)
	}
	for _, job := range existing {
		if job.Type == JobTurnover && job.BookingID != nil && *job.BookingID == booking.ID &&
			job.Status != JobCancelled {
			return nil, fmt.Errorf("%w: booking %s already has turnover job %s", ErrConflict, booking.ID, job.ID)
		}
	}

	checklist, err := c.checklistFor(ctx, JobTurnover)
	if err != nil {
		return nil, err
	}

	bookingID := booking.ID
	job := &Job{
		BaseUUIDModel: NewBaseUUIDModel(c.now()),
		PropertyID:    booking.PropertyID,
		BookingID:     &bookingID,
		Type:          JobTurnover,
		Status:        JobNeedsCleaning,
		Priority:      priority,
		AssignedTo:    slices.Clone(request.AssignedTo),
		Deadline:      booking.TurnoverDeadline(c.location),
		Checklist:     checklist,
		MediaURLs:     []string{},
	}
	if job.AssignedTo == nil {
		job.AssignedTo = []uuid.UUID{}
	}

	if err := c.jobRepo.Create(ctx, job); err != nil {
		return nil, log.Err("failed to create turnover job", err, "bookingID", booking.ID)
	}

	log.Info("Turnover job created", "jobID", job.ID, "propertyID", property.ID, "deadline", job.Deadline)
	c.publish(ctx, events.JOB_CREATED, job,
		fmt.Sprintf("Turnover scheduled at %s, due %s", property.Name, job.Deadline.Format(time.RFC3339)))

	return job, nil
}

func (c *JobController) CreateMaintenanceJob(
	ctx context.Context,
	actor *User,
	request CreateMaintenanceJobRequest,
) (*Job, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateMaintenanceJob")

	if err := authorize(actor, nil, CapCreateMaintenance); err != nil {
		return nil, err
	}

	priority, err := ParsePriority(request.Priority, PriorityMedium)
	if err != nil {
		return nil, err
	}

	if request.Deadline.IsZero() {
		return nil, Invalid("deadline is required")
	}

	property, err := c.propertyRepo.GetByID(ctx, request.PropertyID)
	if err != nil {
		return nil, err
	}

	if request.IssueID != nil {
		issue, err := c.issueRepo.GetByID(ctx, *request.IssueID)
		if err != nil {
			return nil, err
		}
		if issue.PropertyID != property.ID {
			return nil, Invalid("issue %s belongs to another property", issue.ID)
		}
	}

	if err := c.checkAssignees(ctx, request.AssignedTo); err != nil {
		return nil, err
	}

	checklist, err := c.checklistFor(ctx, JobMaintenance)
	if err != nil {
		return nil, err
	}

	job := &Job{
		BaseUUIDModel: NewBaseUUIDModel(c.now()),
		PropertyID:    property.ID,
		Type:          JobMaintenance,
		Status:        JobNeedsCleaning,
		Priority:      priority,
		AssignedTo:    slices.Clone(request.AssignedTo),
		Deadline:      request.Deadline,
		Checklist:     checklist,
		MediaURLs:     []string{},
		Notes:         strings.TrimSpace(request.Notes),
	}
	if job.AssignedTo == nil {
		job.AssignedTo = []uuid.UUID{}
	}

	if err := c.jobRepo.Create(ctx, job); err != nil {
		return nil, log.Err("failed to create maintenance job", err, "propertyID", property.ID)
	}

	log.Info("Maintenance job created", "jobID", job.ID, "propertyID", property.ID, "createdBy", actor.ID)
	c.publish(ctx, events.JOB_CREATED, job, fmt.Sprintf("Maintenance requested at %s", property.Name))

	return job, nil
}

func (c *JobController) Get(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	return c.jobRepo.GetByID(ctx, jobID)
}

func (c *JobController) List(ctx context.Context, filter repositories.JobFilter) ([]*Job, error) {
	jobs, err := c.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, c.log.TraceFromContext(ctx).Function("List").Err("failed to list jobs", err)
	}
	sortByDeadline(jobs)
	return jobs, nil
}

func (c *JobController) ListForAssignee(ctx context.Context, user *User) (*AssigneeJobs, error) {
	if user == nil {
		return nil, ErrForbidden
	}

	jobs, err := c.jobRepo.List(ctx, repositories.JobFilter{AssigneeID: &user.ID})
	if err != nil {
		return nil, c.log.TraceFromContext(ctx).Function("ListForAssignee").
			Err("failed to list assignee jobs", err, "userID", user.ID)
	}
	sortByDeadline(jobs)

	result := &AssigneeJobs{Open: []*Job{}, Finished: []*Job{}}
	for _, job := range jobs {
		if job.Status.IsTerminal() {
			result.Finished = append(result.Finished, job)
		} else {
			result.Open = append(result.Open, job)
		}
	}
	return result, nil
}

func (c *JobController) ListOverdue(ctx context.Context) ([]*Job, error) {
	jobs, err := c.jobRepo.List(ctx, repositories.JobFilter{})
	if err != nil {
		return nil, c.log.Function("ListOverdue").Err("failed to list jobs", err)
	}

	now := c.now()
	overdue := make([]*Job, 0)
	for _, job := range jobs {
		if job.IsOverdue(now) {
			overdue = append(overdue, job)
		}
	}
	sortByDeadline(overdue)
	return overdue, nil
}

// ListNotStarted returns today's turnovers still waiting for a cleaner once
// the start cutoff has passed in the configured zone.
func (c *JobController) ListNotStarted(ctx context.Context) ([]*Job, error) {
	now := c.now().In(c.location)
	year, month, day := now.Date()
	if now.Before(time.Date(year, month, day, TurnoverStartCutoffHour, 0, 0, 0, c.location)) {
		return []*Job{}, nil
	}

	status := JobNeedsCleaning
	jobs, err := c.jobRepo.List(ctx, repositories.JobFilter{Status: &status})
	if err != nil {
		return nil, c.log.Function("ListNotStarted").Err("failed to list jobs", err)
	}

	waiting := make([]*Job, 0)
	for _, job := range jobs {
		dueYear, dueMonth, dueDay := job.Deadline.In(c.location).Date()
		if job.Type == JobTurnover && dueYear == year && dueMonth == month && dueDay == day {
			waiting = append(waiting, job)
		}
	}
	sortByDeadline(waiting)
	return waiting, nil
}

// ListDueSoon returns open jobs whose deadline falls within the next window.
// Jobs already past their deadline belong to ListOverdue.
func (c *JobController) ListDueSoon(ctx context.Context, within time.Duration) ([]*Job, error) {
	jobs, err := c.jobRepo.List(ctx, repositories.JobFilter{})
	if err != nil {
		return nil, c.log.Function("ListDueSoon").Err("failed to list jobs", err)
	}

	now := c.now()
	dueSoon := make([]*Job, 0)
	for _, job := range jobs {
		if job.Status.IsTerminal() || job.IsOverdue(now) {
			continue
		}
		if job.Deadline.Sub(now) <= within {
			dueSoon = append(dueSoon, job)
		}
	}
	sortByDeadline(dueSoon)
	return dueSoon, nil
}

func (c *JobController) Stats(ctx context.Context) (JobStats, error) {
	jobs, err := c.jobRepo.List(ctx, repositories.JobFilter{})
	if err != nil {
		return JobStats{}, c.log.TraceFromContext(ctx).Function("Stats").Err("failed to list jobs", err)
	}
	return ComputeJobStats(jobs, c.now()), nil
}

func (c *JobController) Assign(
	ctx context.Context,
	actor *User,
	jobID uuid.UUID,
	userIDs []uuid.UUID,
) (*Job, error) {
	if actor == nil || !actor.Active || !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := c.checkAssignees(ctx, userIDs); err != nil {
		return nil, err
	}

	job, err := c.mutate(ctx, "Assign", jobID, func(job *Job) (bool, error) {
		return assignJob(job, userIDs)
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, events.JOB_ASSIGNED, job, fmt.Sprintf("Job assigned to %d staff", len(job.AssignedTo)))
	return job, nil
}

func (c *JobController) Start(ctx context.Context, actor *User, jobID uuid.UUID) (*Job, error) {
	var started bool
	job, err := c.mutate(ctx, "Start", jobID, func(job *Job) (bool, error) {
		if err := authorize(actor, job, CapUpdateStatus); err != nil {
			return false, err
		}
		changed, err := startJob(job)
		started = changed
		return changed, err
	})
	if err != nil {
		return nil, err
	}

	if started {
		c.publish(ctx, events.JOB_STARTED, job, fmt.Sprintf("%s started work", actor.Name))
	}
	return job, nil
}

func (c *JobController) ToggleChecklistItem(
	ctx context.Context,
	actor *User,
	jobID, itemID uuid.UUID,
) (*Job, error) {
	var started bool
	job, err := c.mutate(ctx, "ToggleChecklistItem", jobID, func(job *Job) (bool, error) {
		if err := authorize(actor, job, CapUpdateStatus); err != nil {
			return false, err
		}
		started = job.Status == JobNeedsCleaning
		return toggleChecklistItem(job, itemID, c.now())
	})
	if err != nil {
		return nil, err
	}

	if started {
		c.publish(ctx, events.JOB_STARTED, job, fmt.Sprintf("%s started work", actor.Name))
	}
	return job, nil
}

func (c *JobController) AttachMedia(
	ctx context.Context,
	actor *User,
	jobID uuid.UUID,
	mediaRef string,
) (*Job, error) {
	return c.mutate(ctx, "AttachMedia", jobID, func(job *Job) (bool, error) {
		if err := authorize(actor, job, CapUploadMedia); err != nil {
			return false, err
		}
		return attachMedia(job, mediaRef)
	})
}

func (c *JobController) UpdateNotes(
	ctx context.Context,
	actor *User,
	jobID uuid.UUID,
	notes string,
) (*Job, error) {
	return c.mutate(ctx, "UpdateNotes", jobID, func(job *Job) (bool, error) {
		if err := authorize(actor, job, CapAddComments); err != nil {
			return false, err
		}
		return updateNotes(job, notes)
	})
}

func (c *JobController) Complete(ctx context.Context, actor *User, jobID uuid.UUID) (*Job, error) {
	job, err := c.mutate(ctx, "Complete", jobID, func(job *Job) (bool, error) {
		if err := authorize(actor, job, CapUpdateStatus); err != nil {
			return false, err
		}
		return completeJob(job, c.now())
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, events.JOB_COMPLETED, job, c.describe(ctx, job, "completed"))
	return job, nil
}

func (c *JobController) Cancel(
	ctx context.Context,
	actor *User,
	jobID uuid.UUID,
	reason string,
) (*Job, error) {
	if actor == nil || !actor.Active || !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var cancelled bool
	job, err := c.mutate(ctx, "Cancel", jobID, func(job *Job) (bool, error) {
		changed, err := cancelJob(job, reason, c.now())
		cancelled = changed
		return changed, err
	})
	if err != nil {
		return nil, err
	}

	if cancelled {
		c.publish(ctx, events.JOB_CANCELLED, job, c.describe(ctx, job, "cancelled"))
	}
	return job, nil
}

func (c *JobController) ReportIssue(
	ctx context.Context,
	actor *User,
	jobID uuid.UUID,
	request ReportIssueRequest,
) (*Issue, error) {
	log := c.log.TraceFromContext(ctx).Function("ReportIssue")

	issueType, err := ParseIssueType(request.Type)
	if err != nil {
		return nil, err
	}
	itemName := strings.TrimSpace(request.ItemName)
	if itemName == "" {
		return nil, Invalid("itemName is required")
	}

	var issue *Issue
	_, err = c.mutate(ctx, "ReportIssue", jobID, func(job *Job) (bool, error) {
		if err := authorize(actor, job, CapReportIssues); err != nil {
			return false, err
		}

		issue = &Issue{
			ID:         uuid.New(),
			JobID:      job.ID,
			BookingID:  job.BookingID,
			PropertyID: job.PropertyID,
			Type:       issueType,
			ItemName:   itemName,
			Comment:    strings.TrimSpace(request.Comment),
			MediaURL:   strings.TrimSpace(request.MediaURL),
			ReportedBy: actor.ID,
			ReportedAt: c.now(),
		}

		if request.ItemID != nil {
			if err := ensureOpen(job); err != nil {
				return false, err
			}
			if _, err := job.FindChecklistItem(*request.ItemID); err != nil {
				return false, err
			}
		}

		// the issue must exist before a checklist item points at it
		if err := c.issueRepo.Create(ctx, issue); err != nil {
			return false, log.Err("failed to store issue", err, "jobID", jobID)
		}

		if request.ItemID == nil {
			return false, nil
		}
		return true, linkIssue(job, *request.ItemID, issue.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Issue reported", "issueID", issue.ID, "jobID", jobID, "type", issue.Type)
	c.publishEvent(ctx, events.ALERTS_CHANNEL, events.ISSUE_REPORTED, &actor.ID,
		fmt.Sprintf("%s reported %s: %s", actor.Name, strings.ToLower(string(issue.Type)), issue.ItemName),
		map[string]any{"issueId": issue.ID.String(), "jobId": jobID.String(), "propertyId": issue.PropertyID.String()},
	)

	return issue, nil
}

func (c *JobController) ListIssues(ctx context.Context, filter repositories.IssueFilter) ([]*Issue, error) {
	issues, err := c.issueRepo.List(ctx, filter)
	if err != nil {
		return nil, c.log.TraceFromContext(ctx).Function("ListIssues").Err("failed to list issues", err)
	}
	slices.SortStableFunc(issues, func(a, b *Issue) int {
		return b.ReportedAt.Compare(a.ReportedAt)
	})
	return issues, nil
}

func (c *JobController) ChecklistTemplate(ctx context.Context, jobType JobType) (*ChecklistTemplate, error) {
	return c.checklistRepo.Get(ctx, jobType)
}

// UpdateChecklistTemplate replaces the master checklist for jobType. Jobs
// already created keep the checklist they were given.
func (c *JobController) UpdateChecklistTemplate(
	ctx context.Context,
	actor *User,
	jobType JobType,
	items []ChecklistTemplateItem,
) (*ChecklistTemplate, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateChecklistTemplate")

	if actor == nil || !actor.Active || !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	template := NewChecklistTemplate(jobType, items)
	if err := template.Validate(); err != nil {
		return nil, err
	}

	unlock := c.locks.Lock("checklist:" + string(jobType))
	defer unlock()

	if _, err := c.checklistRepo.Get(ctx, jobType); err != nil {
		return nil, err
	}
	if err := c.checklistRepo.Replace(ctx, &template); err != nil {
		return nil, log.Err("failed to replace checklist template", err, "jobType", jobType)
	}

	log.Info("Checklist template updated", "jobType", jobType, "items", len(template.Items), "updatedBy", actor.ID)
	c.publishEvent(ctx, events.OPERATIONS_CHANNEL, events.CHECKLIST_UPDATED, &actor.ID,
		fmt.Sprintf("%s updated the %s checklist", actor.Name, strings.ToLower(string(jobType))),
		map[string]any{"jobType": string(jobType), "items": len(template.Items)},
	)

	return &template, nil
}

// checklistFor copies the current master checklist into a new job.
func (c *JobController) checklistFor(ctx context.Context, jobType JobType) ([]ChecklistItem, error) {
	unlock := c.locks.Lock("checklist:" + string(jobType))
	defer unlock()

	template, err := c.checklistRepo.Get(ctx, jobType)
	if err != nil {
		return nil, c.log.TraceFromContext(ctx).Function("checklistFor").
			Err("failed to load checklist template", err, "jobType", jobType)
	}
	return NewChecklist(template.Items), nil
}

// mutate serializes writers per job, applies change to a fresh copy and
// stores it when change reports a modification.
func (c *JobController) mutate(
	ctx context.Context,
	operation string,
	jobID uuid.UUID,
	change func(job *Job) (bool, error),
) (*Job, error) {
	log := c.log.TraceFromContext(ctx).Function(operation)

	unlock := c.locks.Lock("job:" + jobID.String())
	defer unlock()

	job, err := c.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	changed, err := change(job)
	if err != nil {
		log.Debug("job change rejected", "jobID", jobID, "status", job.Status, "error", err)
		return nil, err
	}
	if !changed {
		return job, nil
	}

	if err := c.jobRepo.Save(ctx, job); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, log.Err("failed to save job", err, "jobID", jobID)
	}

	log.Info("Job updated", "jobID", job.ID, "status", job.Status, "revision", job.Revision)
	return job, nil
}

func (c *JobController) checkAssignees(ctx context.Context, userIDs []uuid.UUID) error {
	for _, id := range userIDs {
		user, err := c.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !user.Active {
			return Invalid("user %s is inactive", id)
		}
	}
	return nil
}

func (c *JobController) describe(ctx context.Context, job *Job, verb string) string {
	kind := "Turnover"
	if job.Type == JobMaintenance {
		kind = "Maintenance"
	}

	property, err := c.propertyRepo.GetByID(ctx, job.PropertyID)
	if err != nil {
		return fmt.Sprintf("%s job %s %s", kind, job.ID, verb)
	}
	return fmt.Sprintf("%s at %s %s", kind, property.Name, verb)
}

func (c *JobController) publish(ctx context.Context, eventType events.MessageType, job *Job, message string) {
	c.publishEvent(ctx, events.OPERATIONS_CHANNEL, eventType, nil, message, map[string]any{
		"jobId":      job.ID.String(),
		"propertyId": job.PropertyID.String(),
		"status":     string(job.Status),
	})
}

// publishEvent never fails the operation that triggered it.
func (c *JobController) publishEvent(
	ctx context.Context,
	channel events.Channel,
	eventType events.MessageType,
	userID *uuid.UUID,
	message string,
	data map[string]any,
) {
	if c.eventBus == nil {
		return
	}

	err := c.eventBus.Publish(channel, events.Event{
		Type:    eventType,
		UserID:  userID,
		Message: message,
		Data:    data,
	})
	if err != nil {
		c.log.TraceFromContext(ctx).Function("publishEvent").
			Er("failed to publish job event", err, "type", eventType)
	}
}

// authorize checks the capability flag, and for non-admin staff also that
// they are assigned to the job.
func authorize(actor *User, job *Job, capability Capability) error {
	if actor == nil || !actor.Can(capability) {
		return fmt.Errorf("%w: missing %s", ErrForbidden, capability)
	}
	if job == nil || actor.IsAdmin() {
		return nil
	}
	if !job.IsAssignedTo(actor.ID) {
		return fmt.Errorf("%w: not assigned to job %s", ErrForbidden, job.ID)
	}
	return nil
}

func sortByDeadline(jobs []*Job) {
	slices.SortStableFunc(jobs, func(a, b *Job) int {
		return a.Deadline.Compare(b.Deadline)
	})
}
