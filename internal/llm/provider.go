package llm

import (
	"context"
	"fmt"

	"github.com/stratusdial/convoiq/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Explain generates a plain-language narrative of a trigger decision
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExplainRequest contains the input for narrative generation
type ExplainRequest struct {
	// Report is the complete analysis report to explain
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExplainResponse contains the generated narrative
type ExplainResponse struct {
	// Narrative is the generated text
	Narrative string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictFacts restricts the narrative to restating report data; the
	// decision itself is made before the narrative and is never changed
	StrictFacts bool

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "", // Disabled by default
		Model:       "",
		Timeout:     30,
		StrictFacts: true,
		MaxTokens:   800,
	}
}

// systemPrompt is shared by all providers
const systemPrompt = "You are documenting automation decisions for compliance review. " +
	"You restate facts from the evaluation record; you never second-guess or alter the decision."

// BuildPrompt constructs the default narrative prompt from a report
func BuildPrompt(report model.Report) string {
	decision := "no automation fired"
	if report.Triggered() {
		decision = "at least one automation fired"
	}

	prompt := fmt.Sprintf(`You are writing a compliance narrative for an automated interaction analysis.

CRITICAL RULES:
1. The decision has already been made: %s. Describe it, never dispute or revise it.
2. Reference ONLY the facts listed below. Do not infer or speculate.
3. Use neutral language: "the text matched", "confidence was below threshold".

Evaluation %s:
- Sentiment: %s (confidence %d, mixed=%v)
- Primary intent: %s
`, decision, report.EvaluationID, report.Sentiment.Sentiment, report.Sentiment.Confidence,
		report.Sentiment.IsMixedSentiment, primaryIntent(report))

	if report.Disposition != nil {
		prompt += fmt.Sprintf("- Disposition category: %s (confidence %d)\n",
			report.Disposition.Category, report.Disposition.Confidence)
	}
	if report.Profile != nil {
		prompt += fmt.Sprintf("- Contact overall sentiment: %d/100, trend %s, change flag %v\n",
			report.Profile.OverallScore, report.Profile.Trend, report.Profile.SentimentChangeFlag)
	}

	for _, e := range report.Evaluations {
		prompt += fmt.Sprintf("- Rule %q: triggered=%v, %d matched, %d failed conditions\n",
			e.RuleName, e.Result.Triggered, len(e.Result.MatchedConditions), len(e.Result.FailedConditions))
		for _, f := range e.Result.FailedConditions {
			prompt += fmt.Sprintf("  - failed %s=%q: %s (observed %d, threshold %d)\n",
				f.Type, f.Value, f.Reason, f.Confidence, f.Threshold)
		}
	}

	prompt += "\nWrite a 3-5 sentence narrative of why the decision came out this way."

	return prompt
}

func primaryIntent(report model.Report) string {
	if report.Intent == nil {
		return "(not detected)"
	}
	return fmt.Sprintf("%s (confidence %d)", report.Intent.PrimaryIntent, report.Intent.ConfidenceScore)
}
