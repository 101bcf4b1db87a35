package repositories

import (
	"context"
	"errors"
	"luminaops/internal/database"
	. "luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobFilter struct {
	PropertyID *uuid.UUID
	Status     *JobStatus
	AssigneeID *uuid.UUID
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]*Job, error)
	// Save stores job if its Revision still matches the stored one and bumps
	// the revision on both copies.
	Save(ctx context.Context, job *Job) error
}

type jobRepository struct {
	db  database.DB
	log logger.Logger
}

func NewJobRepository(db database.DB) JobRepository {
	return &jobRepository{
		db:  db,
		log: logger.New("jobRepository"),
	}
}

func (r *jobRepository) Create(ctx context.Context, job *Job) error {
	if err := r.db.SQLWithContext(ctx).Create(job).Error; err != nil {
		return r.log.Function("Create").Err("failed to create job", err, "jobID", job.ID)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	var job Job
	if err := r.db.SQLWithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("job", id)
		}
		return nil, r.log.Function("GetByID").Err("failed to get job", err, "jobID", id)
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]*Job, error) {
	query := r.db.SQLWithContext(ctx).Order("rowid")
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var jobs []*Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, r.log.Function("List").Err("failed to list jobs", err)
	}

	if filter.AssigneeID == nil {
		return jobs, nil
	}

	// assignees live in a JSON column
	assigned := jobs[:0]
	for _, job := range jobs {
		if job.IsAssignedTo(*filter.AssigneeID) {
			assigned = append(assigned, job)
		}
	}
	return assigned, nil
}

func (r *jobRepository) Save(ctx context.Context, job *Job) error {
	log := r.log.Function("Save")

	next := *job
	next.Revision = job.Revision + 1

	result := r.db.SQLWithContext(ctx).
		Model(&Job{}).
		Where("id = ? AND revision = ?", job.ID, job.Revision).
		Select("*").
		Omit("id", "created_at").
		Updates(&next)
	if result.Error != nil {
		return log.Err("failed to save job", result.Error, "jobID", job.ID)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.SQLWithContext(ctx).Model(&Job{}).Where("id = ?", job.ID).Count(&count).Error; err != nil {
			return log.Err("failed to check job existence", err, "jobID", job.ID)
		}
		if count == 0 {
			return NotFound("job", job.ID)
		}
		log.Warn("stale job write rejected", "jobID", job.ID, "revision", job.Revision)
		return ErrConflict
	}

	job.Revision = next.Revision
	return nil
}
