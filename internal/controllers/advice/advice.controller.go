package adviceController

import (
	"context"
	"strings"

	. "luminaops/internal/models"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// Advisor produces free text guidance and never fails; services.AdviceService
// is the production implementation.
type Advisor interface {
	MaintenanceAdvice(ctx context.Context, description string) string
	PropertySummary(ctx context.Context, propertyID string, jobs []*Job, issues []*Issue) string
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}

type SummaryResponse struct {
	PropertyID uuid.UUID `json:"propertyId"`
	Summary    string    `json:"summary"`
}

type AdviceControllerInterface interface {
	MaintenanceAdvice(ctx context.Context, description string) (*AdviceResponse, error)
	PropertySummary(ctx context.Context, propertyID uuid.UUID) (*SummaryResponse, error)
}

type AdviceController struct {
	advisor      Advisor
	propertyRepo repositories.PropertyRepository
	jobRepo      repositories.JobRepository
	issueRepo    repositories.IssueRepository
	log          logger.Logger
}

func New(repos repositories.Repository, advisor Advisor) AdviceControllerInterface {
	return &AdviceController{
		advisor:      advisor,
		propertyRepo: repos.Property,
		jobRepo:      repos.Job,
		issueRepo:    repos.Issue,
		log:          logger.New("adviceController"),
	}
}

func (ac *AdviceController) MaintenanceAdvice(ctx context.Context, description string) (*AdviceResponse, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, Invalid("description is required")
	}

	return &AdviceResponse{Advice: ac.advisor.MaintenanceAdvice(ctx, description)}, nil
}

func (ac *AdviceController) PropertySummary(ctx context.Context, propertyID uuid.UUID) (*SummaryResponse, error) {
	log := ac.log.TraceFromContext(ctx).Function("PropertySummary")

	if _, err := ac.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}

	jobs, err := ac.jobRepo.List(ctx, repositories.JobFilter{PropertyID: &propertyID})
	if err != nil {
		return nil, log.Err("failed to list property jobs", err, "propertyID", propertyID)
	}
	issues, err := ac.issueRepo.List(ctx, repositories.IssueFilter{PropertyID: &propertyID})
	if err != nil {
		return nil, log.Err("failed to list property issues", err, "propertyID", propertyID)
	}

	return &SummaryResponse{
		PropertyID: propertyID,
		Summary:    ac.advisor.PropertySummary(ctx, propertyID.String(), jobs, issues),
	}, nil
}
