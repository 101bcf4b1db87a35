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

type IssueFilter struct {
	PropertyID *uuid.UUID
	JobID      *uuid.UUID
}

// IssueRepository has no update: issues are immutable once reported.
type IssueRepository interface {
	Create(ctx context.Context, issue *Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]*Issue, error)
}

type issueRepository struct {
	db  database.DB
	log logger.Logger
}

func NewIssueRepository(db database.DB) IssueRepository {
	return &issueRepository{
		db:  db,
		log: logger.New("issueRepository"),
	}
}

func (r *issueRepository) Create(ctx context.Context, issue *Issue) error {
	if err := r.db.SQLWithContext(ctx).Create(issue).Error; err != nil {
		return r.log.Function("Create").Err("failed to create issue", err, "issueID", issue.ID)
	}
	return nil
}

func (r *issueRepository) GetByID(ctx context.Context, id uuid.UUID) (*Issue, error) {
	var issue Issue
	if err := r.db.SQLWithContext(ctx).First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("issue", id)
		}
		return nil, r.log.Function("GetByID").Err("failed to get issue", err, "issueID", id)
	}
	return &issue, nil
}

func (r *issueRepository) List(ctx context.Context, filter IssueFilter) ([]*Issue, error) {
	query := r.db.SQLWithContext(ctx).Order("rowid")
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.JobID != nil {
		query = query.Where("job_id = ?", *filter.JobID)
	}

	var issues []*Issue
	if err := query.Find(&issues).Error; err != nil {
		return nil, r.log.Function("List").Err("failed to list issues", err)
	}
	return issues, nil
}
