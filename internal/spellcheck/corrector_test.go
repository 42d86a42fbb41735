package spellcheck

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/review-writer/internal/llm"
	"github.com/jonathan/review-writer/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return m.GenerateJSONFunc(ctx, prompt, tier)
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func TestLLMCorrector_Correct(t *testing.T) {
	var gotPrompt string
	var gotTier llm.ModelTier
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			gotPrompt, gotTier = prompt, tier
			return "```json\n{\"correctedText\": \"você vai gostar\", \"adjustments\": [\"'voce' -> 'você'\"]}\n```", nil
		},
	}

	res, err := NewLLMCorrector(client).Correct(context.Background(), "voce vai gostar", "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "você vai gostar", res.CorrectedText)
	assert.Equal(t, []string{"'voce' -> 'você'"}, res.Adjustments)
	assert.Equal(t, llm.TierLite, gotTier)
	assert.Contains(t, gotPrompt, "voce vai gostar")
	assert.Contains(t, gotPrompt, "pt-BR")
}

func TestLLMCorrector_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		check func(t *testing.T, err error)
	}{
		{
			name: "service error",
			err:  errors.New("timeout"),
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "timeout")
			},
		},
		{
			name:  "missing field",
			reply: `{"adjustments": []}`,
			check: func(t *testing.T, err error) {
				var vErr *schemas.ValidationError
				assert.True(t, errors.As(err, &vErr))
			},
		},
		{
			name:  "not json",
			reply: "Texto corrigido: você",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "malformed correction reply")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockLLMClient{
				GenerateJSONFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
					return tt.reply, tt.err
				},
			}
			_, err := NewLLMCorrector(client).Correct(context.Background(), "texto", "pt-BR")
			require.Error(t, err)
			var cErr *CorrectionError
			require.True(t, errors.As(err, &cErr))
			tt.check(t, err)
		})
	}
}

// upperCorrector upper-cases text and reports one adjustment per block.
type upperCorrector struct{}

func (upperCorrector) Correct(_ context.Context, text, _ string) (*Correction, error) {
	return &Correction{CorrectedText: strings.ToUpper(text), Adjustments: []string{"fixed " + text, " "}}, nil
}

func TestCorrectBlocks(t *testing.T) {
	corrected, adjustments, err := CorrectBlocks(context.Background(), upperCorrector{}, []string{"a", "", "b"}, "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "", "B"}, corrected)
	assert.Equal(t, []string{"fixed a", "fixed b"}, adjustments)

	corrected, adjustments, err = CorrectBlocks(context.Background(), upperCorrector{}, nil, "en")
	require.NoError(t, err)
	assert.Empty(t, corrected)
	assert.Equal(t, []string{}, adjustments)
}
