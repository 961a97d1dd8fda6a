package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/justsurfingit/job-catalog/internal/dtos"
	apperrors "github.com/justsurfingit/job-catalog/internal/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const maxExtractionInput = 20000

const postingExtractionPrompt = `
You are a job posting data extraction agent. Analyze the raw text of a job advertisement and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, related offers and advertisements.
2. Output valid JSON only. Do not wrap the output in markdown code blocks.
3. If a piece of information is missing use an empty string, 0 or an empty list. Do not guess.

### OUTPUT SCHEMA:
{
    "title": "Job title",
    "employer": {"name": "Company name", "address": "Street address", "district": "District or city area"},
    "requirements": {"education": "Required education", "skills": ["Each", "required", "skill"]},
    "experienceYears": 0,
    "monthlySalary": 0,
    "expirationDate": "YYYY-MM-DD"
}

### RAW CONTENT:
%s
`

// TextGenerator produces a completion for a single prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMGenerator adapts a langchaingo model to TextGenerator.
type LLMGenerator struct {
	Client llms.Model
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*LLMGenerator, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMGenerator{Client: llm}, nil
}

func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.Client, prompt)
}

// ExtractionService turns a free-text job advertisement into a posting draft.
// Drafts are returned to the caller and never stored.
type ExtractionService struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewExtractionService(generator TextGenerator, logger *zap.Logger) *ExtractionService {
	return &ExtractionService{generator: generator, logger: logger}
}

func (s *ExtractionService) ExtractDraft(ctx context.Context, rawText string) (*dtos.PostingRequest, error) {
	ctx, span := tracer.Start(ctx, "ExtractionService.ExtractDraft")
	defer span.End()

	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return nil, apperrors.InvalidInput("raw_text must not be empty", nil)
	}
	rawText = truncateUTF8(rawText, maxExtractionInput)

	resp, err := s.generator.Generate(ctx, fmt.Sprintf(postingExtractionPrompt, rawText))
	if err != nil {
		span.RecordError(err)
		s.logger.Error("posting extraction failed", zap.Error(err))
		return nil, apperrors.Unavailable("language model request failed", err)
	}

	var draft dtos.PostingRequest
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &draft); err != nil {
		s.logger.Warn("language model returned invalid JSON",
			zap.String("response", resp),
			zap.Error(err))
		return nil, apperrors.Internal("language model returned invalid JSON", err)
	}

	return &draft, nil
}

// truncateUTF8 cuts s to at most limit bytes without splitting a rune.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// stripCodeFence removes a surrounding ``` or ```json fence if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
