package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stratusdial/convoiq/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *ExplainResponse
	err       error
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func TestNewExplainer_DisabledProvider(t *testing.T) {
	config := Config{
		Provider: "", // Empty = disabled
	}

	explainer, err := NewExplainer(config)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if explainer.IsEnabled() {
		t.Error("Expected explainer to be disabled")
	}
	if explainer.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}
}

func TestExplainer_GenerateNarrative_Disabled(t *testing.T) {
	explainer := &Explainer{
		provider: nil,
		config:   Config{},
	}

	narrative, err := explainer.GenerateNarrative(context.Background(), model.Report{})

	if err != nil {
		t.Errorf("Expected no error when disabled, got %v", err)
	}
	if narrative != nil {
		t.Error("Expected nil narrative when provider disabled")
	}
}

func TestExplainer_GenerateNarrative_ProviderUnavailable(t *testing.T) {
	explainer := &Explainer{
		provider: &MockProvider{name: "mock", available: false},
		config:   Config{},
	}

	narrative, err := explainer.GenerateNarrative(context.Background(), model.Report{})

	if err != nil {
		t.Fatalf("Expected degraded result instead of error, got %v", err)
	}
	if narrative == nil {
		t.Fatal("Expected a narrative carrying a warning")
	}
	if len(narrative.Warnings) == 0 || !strings.Contains(narrative.Warnings[0], "unavailable") {
		t.Errorf("Expected unavailable warning, got %v", narrative.Warnings)
	}
	if narrative.NarrativeMD != "" {
		t.Error("Expected no narrative text from an unavailable provider")
	}
}

func TestExplainer_GenerateNarrative_ProviderError(t *testing.T) {
	explainer := &Explainer{
		provider: &MockProvider{name: "mock", available: true, err: errors.New("api error")},
		config:   Config{},
	}

	narrative, err := explainer.GenerateNarrative(context.Background(), model.Report{})

	if err != nil {
		t.Fatalf("Expected degraded result instead of error, got %v", err)
	}
	if narrative == nil || len(narrative.Warnings) == 0 {
		t.Fatal("Expected a narrative carrying the failure warning")
	}
	if !strings.Contains(narrative.Warnings[0], "api error") {
		t.Errorf("Expected failure detail in warning, got %v", narrative.Warnings)
	}
}

func TestExplainer_GenerateNarrative_Success(t *testing.T) {
	explainer := &Explainer{
		provider: &MockProvider{
			name:      "mock",
			available: true,
			response: &ExplainResponse{
				Narrative: "The opt-out rule fired because the text matched a stop phrase.",
				Model:     "mock-model",
			},
		},
		config: Config{},
	}

	narrative, err := explainer.GenerateNarrative(context.Background(), model.Report{})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if narrative == nil || !narrative.Enabled {
		t.Fatal("Expected an enabled narrative")
	}
	if narrative.Provider != "mock" || narrative.Model != "mock-model" {
		t.Errorf("Expected provider/model recorded, got %s/%s", narrative.Provider, narrative.Model)
	}
	if narrative.NarrativeMD == "" {
		t.Error("Expected narrative text")
	}
	if len(narrative.Warnings) != 0 {
		t.Errorf("Expected no warnings on success, got %v", narrative.Warnings)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "carrier-pigeon"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai without API key")
	}
	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("Expected error for anthropic without API key")
	}
}

func TestBuildPrompt_ContainsDecisionFacts(t *testing.T) {
	report := model.Report{
		EvaluationID: "eval-1",
		Sentiment: model.SentimentResult{
			Sentiment:  model.SentimentNegative,
			Confidence: 85,
		},
		Intent: &model.IntentResult{
			PrimaryIntent:   model.IntentComplaint,
			ConfidenceScore: 60,
		},
		Evaluations: []model.RuleEvaluation{
			{
				RuleName: "At-risk contact alert",
				Result: model.TriggerEvaluationResult{
					Triggered: true,
					MatchedConditions: []model.MatchedCondition{
						{Type: model.ConditionSentiment, Value: "negative", Confidence: 85},
					},
				},
			},
		},
	}

	prompt := BuildPrompt(report)

	for _, want := range []string{"eval-1", "negative", "complaint", "At-risk contact alert", "never dispute"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}
