package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// fakeModel records every call and answers with reply or err.
type fakeModel struct {
	mu    sync.Mutex
	calls [][]llms.MessageContent
	reply string
	err   error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, messages)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func textOf(t *testing.T, m llms.MessageContent) string {
	t.Helper()
	require.Len(t, m.Parts, 1)
	part, ok := m.Parts[0].(llms.TextContent)
	require.True(t, ok)
	return part.Text
}

func TestChat_UsesMentorPersona(t *testing.T) {
	model := &fakeModel{reply: "  Tailor your CV.\n"}
	svc := NewLLMService(model, 0, zap.NewNop())

	got, err := svc.Chat(context.Background(), "How do I improve my CV?")
	require.NoError(t, err)
	assert.Equal(t, "Tailor your CV.", got)

	require.Equal(t, 1, model.callCount())
	msgs := model.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, schema.ChatMessageTypeSystem, msgs[0].Role)
	assert.Equal(t, MentorSystemPrompt, textOf(t, msgs[0]))
	assert.Equal(t, schema.ChatMessageTypeHuman, msgs[1].Role)
	assert.Equal(t, "How do I improve my CV?", textOf(t, msgs[1]))
}

func TestReviewResume_UsesRecruiterPersona(t *testing.T) {
	model := &fakeModel{reply: "Solid resume."}
	svc := NewLLMService(model, 0, zap.NewNop())

	got, err := svc.ReviewResume(context.Background(), "Jane Doe, Go engineer")
	require.NoError(t, err)
	assert.Equal(t, "Solid resume.", got)
	assert.Equal(t, RecruiterSystemPrompt, textOf(t, model.calls[0][0]))
	assert.Equal(t, "Jane Doe, Go engineer", textOf(t, model.calls[0][1]))
}

func TestReviewResume_EmptyTextSkipsModel(t *testing.T) {
	model := &fakeModel{reply: "unused"}
	svc := NewLLMService(model, 0, zap.NewNop())

	for _, text := range []string{"", "   \n\t"} {
		got, err := svc.ReviewResume(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, NoExtractableTextResponse, got)
	}
	assert.Zero(t, model.callCount())
}

func TestComplete_ProviderErrorIsUnavailable(t *testing.T) {
	model := &fakeModel{err: errors.New("402 insufficient balance")}
	svc := NewLLMService(model, 0, zap.NewNop())

	_, err := svc.Chat(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrAdvisoryUnavailable)
	assert.Contains(t, err.Error(), "402 insufficient balance")
	assert.Equal(t, 1, model.callCount(), "no retry")
}

func TestComplete_NoModelConfigured(t *testing.T) {
	svc := NewLLMService(nil, 0, zap.NewNop())

	_, err := svc.Chat(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrAdvisoryUnavailable)
}

type emptyModel struct{ fakeModel }

func (e *emptyModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return &llms.ContentResponse{}, nil
}

func TestComplete_EmptyChoices(t *testing.T) {
	svc := NewLLMService(&emptyModel{}, 0, zap.NewNop())

	_, err := svc.Chat(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrAdvisoryUnavailable)
}
