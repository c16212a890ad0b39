package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/config"
)

var ErrAdvisoryUnavailable = errors.New("advisory service unavailable")

const MentorSystemPrompt = "You are a helpful mentor, providing feedback on user's resume's and their overall job search, you can provide helpful information such as what jobs they might be suited for, what they can do to improve their resume, what a cover letter for a job should look like, as well as compare their resume to a job description and requirements. It's useful to note that when a user shares their resume or cover letter with you, you don't keep it too uptight, the user most likely wants a professional but laid-back cover letter or resume, the only things you should look out for are grammatical errors, help them nail their resume and cover letter, but not go too overboard with it. Also bear in mind that some PDF files may have weird spacing, usually this isn't an issue unless the spelling is wrong."

const RecruiterSystemPrompt = "You are a recruiter AI assistant. Provide feedback on the resume text."

// NoExtractableTextResponse is returned for resumes without text; the
// model is not called.
const NoExtractableTextResponse = "No extractable text found in the PDF."

type LLMService struct {
	// nil when no provider credential is configured
	Client  llms.Model
	timeout time.Duration
	logger  *zap.Logger
}

func NewLLMService(client llms.Model, timeout time.Duration, logger *zap.Logger) *LLMService {
	return &LLMService{
		Client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// NewLanguageModel builds the chat model for the configured provider.
// It returns nil, nil when the provider key is not set.
func NewLanguageModel(ctx context.Context, cfg *config.Config) (llms.Model, error) {
	switch cfg.AdvisoryProvider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.GeminiModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return llm, nil
	default:
		if cfg.DeepSeekAPIKey == "" {
			return nil, nil
		}
		llm, err := openai.New(
			openai.WithToken(cfg.DeepSeekAPIKey),
			openai.WithBaseURL(cfg.DeepSeekBaseURL),
			openai.WithModel(cfg.DeepSeekModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create deepseek client: %w", err)
		}
		return llm, nil
	}
}

// Complete sends one system/user message pair and returns the trimmed
// reply. A single attempt is made.
func (s *LLMService) Complete(ctx context.Context, system, user string) (string, error) {
	if s.Client == nil {
		return "", fmt.Errorf("%w: no language model configured", ErrAdvisoryUnavailable)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, user),
	}

	start := time.Now()
	resp, err := s.Client.GenerateContent(ctx, messages)
	if err != nil {
		s.logger.Error("completion failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrAdvisoryUnavailable, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response from model", ErrAdvisoryUnavailable)
	}

	s.logger.Debug("completion done",
		zap.Duration("duration", time.Since(start)),
		zap.Int("input_chars", len(user)),
	)
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// Chat answers a free-form career question.
func (s *LLMService) Chat(ctx context.Context, message string) (string, error) {
	return s.Complete(ctx, MentorSystemPrompt, message)
}

// ReviewResume gives recruiter feedback on extracted resume text.
func (s *LLMService) ReviewResume(ctx context.Context, resumeText string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return NoExtractableTextResponse, nil
	}
	return s.Complete(ctx, RecruiterSystemPrompt, resumeText)
}
