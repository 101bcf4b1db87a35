package repositories

import (
	"context"
	"errors"
	"luminaops/internal/database"
	. "luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// ChecklistRepository stores the master checklist per job type.
type ChecklistRepository interface {
	Get(ctx context.Context, jobType JobType) (*ChecklistTemplate, error)
	Replace(ctx context.Context, template *ChecklistTemplate) error
}

type checklistRepository struct {
	db  database.DB
	log logger.Logger
}

func NewChecklistRepository(db database.DB) ChecklistRepository {
	return &checklistRepository{
		db:  db,
		log: logger.New("checklistRepository"),
	}
}

func (r *checklistRepository) Get(ctx context.Context, jobType JobType) (*ChecklistTemplate, error) {
	var template ChecklistTemplate
	if err := r.db.SQLWithContext(ctx).First(&template, "job_type = ?", jobType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("checklist template", jobType)
		}
		return nil, r.log.Function("Get").Err("failed to get checklist template", err, "jobType", jobType)
	}
	return &template, nil
}

func (r *checklistRepository) Replace(ctx context.Context, template *ChecklistTemplate) error {
	if err := r.db.SQLWithContext(ctx).Save(template).Error; err != nil {
		return r.log.Function("Replace").
			Err("failed to replace checklist template", err, "jobType", template.JobType)
	}
	return nil
}
