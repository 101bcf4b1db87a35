package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"luminaops/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type slowGenerator struct {
	delay time.Duration
}

func (g slowGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	select {
	case <-time.After(g.delay):
		return "too late", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type panicGenerator struct{}

func (panicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	panic("boom")
}

func TestAdviceService_MaintenanceAdvice(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		err      error
		expected string
	}{
		{
			name:     "returns generated text",
			text:     "  Simple fix, call a plumber.  ",
			expected: "Simple fix, call a plumber.",
		},
		{
			name:     "generator error falls back",
			err:      errors.New("quota exceeded"),
			expected: AdviceFallback,
		},
		{
			name:     "empty text falls back",
			text:     "   ",
			expected: AdviceFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := new(MockTextGenerator)
			generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
				return strings.Contains(prompt, "Leaking tap in kitchen")
			})).Return(tt.text, tt.err).Once()

			service := NewAdviceServiceWithGenerator(generator, time.Second)
			result := service.MaintenanceAdvice(context.Background(), "Leaking tap in kitchen")

			assert.Equal(t, tt.expected, result)
			generator.AssertExpectations(t)
		})
	}
}

func TestAdviceService_Timeout(t *testing.T) {
	service := NewAdviceServiceWithGenerator(slowGenerator{delay: time.Second}, 20*time.Millisecond)

	start := time.Now()
	result := service.MaintenanceAdvice(context.Background(), "Broken boiler")

	assert.Equal(t, AdviceFallback, result)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestAdviceService_NoGenerator(t *testing.T) {
	service := NewAdviceServiceWithGenerator(nil, time.Second)

	assert.Equal(t, AdviceFallback, service.MaintenanceAdvice(context.Background(), "anything"))
	assert.Equal(t, SummaryFallback, service.PropertySummary(context.Background(), "p1", nil, nil))
}

func TestAdviceService_GeneratorPanic(t *testing.T) {
	service := NewAdviceServiceWithGenerator(panicGenerator{}, time.Second)

	assert.Equal(t, SummaryFallback, service.PropertySummary(context.Background(), "p1", nil, nil))
}

func TestAdviceService_PropertySummaryPromptIncludesJobs(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	job := &models.Job{
		BaseUUIDModel: models.NewBaseUUIDModel(now),
		Type:          models.JobTurnover,
		Status:        models.JobInProgress,
		Deadline:      now.Add(time.Hour),
	}

	generator := new(MockTextGenerator)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "IN_PROGRESS") && strings.Contains(prompt, "prop-42")
	})).Return("All good.", nil).Once()

	service := NewAdviceServiceWithGenerator(generator, time.Second)
	result := service.PropertySummary(context.Background(), "prop-42", []*models.Job{job}, nil)

	assert.Equal(t, "All good.", result)
	generator.AssertExpectations(t)
}
