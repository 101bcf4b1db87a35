package services

import (
	"context"
	"encoding/json"
	"fmt"
	"luminaops/config"
	"luminaops/internal/models"
	"strings"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"google.golang.org/genai"
)

const (
	AdviceFallback  = "Unable to generate advice at this time."
	SummaryFallback = "Property status summary unavailable."
)

// TextGenerator turns a prompt into free text. The Gemini client is the
// production implementation.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return response.Text(), nil
}

// AdviceService wraps the generator so that no failure, slow answer or empty
// answer ever reaches the caller: one attempt, bounded by timeout, then the
// fixed fallback text.
type AdviceService struct {
	generator TextGenerator
	timeout   time.Duration
	log       logger.Logger
}

func NewAdviceService(config config.Config) *AdviceService {
	log := logger.New("adviceService").Function("NewAdviceService")

	service := &AdviceService{
		timeout: config.AdviceTimeout(),
		log:     logger.New("adviceService"),
	}

	if config.GeminiAPIKey == "" {
		log.Info("No GEMINI_API_KEY configured, advice will use fallbacks")
		return service
	}

	generator, err := NewGeminiGenerator(context.Background(), config.GeminiAPIKey, config.AdviceModel)
	if err != nil {
		log.Er("failed to create advice generator, advice will use fallbacks", err)
		return service
	}

	service.generator = generator
	return service
}

func NewAdviceServiceWithGenerator(generator TextGenerator, timeout time.Duration) *AdviceService {
	return &AdviceService{
		generator: generator,
		timeout:   timeout,
		log:       logger.New("adviceService"),
	}
}

func (s *AdviceService) MaintenanceAdvice(ctx context.Context, description string) string {
	prompt := fmt.Sprintf(
		"A short-let property reported this maintenance issue: %q. "+
			"In two sentences, estimate how complex the fix is and which trade professional should handle it.",
		description,
	)
	return s.generate(ctx, "MaintenanceAdvice", prompt, AdviceFallback)
}

func (s *AdviceService) PropertySummary(
	ctx context.Context,
	propertyID string,
	jobs []*models.Job,
	issues []*models.Issue,
) string {
	jobsJSON, err := json.Marshal(jobs)
	if err != nil {
		s.log.Function("PropertySummary").Er("failed to encode jobs", err, "propertyID", propertyID)
		return SummaryFallback
	}
	issuesJSON, err := json.Marshal(issues)
	if err != nil {
		s.log.Function("PropertySummary").Er("failed to encode issues", err, "propertyID", propertyID)
		return SummaryFallback
	}

	prompt := fmt.Sprintf(
		"Summarize the current operational status of property %s for the operations manager "+
			"in one concise paragraph.\nJobs: %s\nIssues: %s",
		propertyID,
		jobsJSON,
		issuesJSON,
	)
	return s.generate(ctx, "PropertySummary", prompt, SummaryFallback)
}

func (s *AdviceService) generate(ctx context.Context, operation, prompt, fallback string) string {
	log := s.log.TraceFromContext(ctx).Function(operation)

	if s.generator == nil {
		return fallback
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				done <- result{err: fmt.Errorf("advice generator panicked: %v", recovered)}
			}
		}()
		text, err := s.generator.Generate(timeoutCtx, prompt)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			log.Warn("advice generation failed", "error", res.err)
			return fallback
		}
		text := strings.TrimSpace(res.text)
		if text == "" {
			log.Warn("advice generator returned empty text")
			return fallback
		}
		return text
	case <-timeoutCtx.Done():
		log.Warn("advice generation timed out", "timeout", s.timeout.String())
		return fallback
	}
}
