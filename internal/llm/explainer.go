package llm

import (
	"context"
	"fmt"

	"github.com/stratusdial/convoiq/internal/model"
)

// Explainer wraps a Provider to produce compliance narratives. The narrative
// is generated strictly after evaluation and can never change a decision;
// provider failure degrades to a warning, never a failed analysis.
type Explainer struct {
	provider Provider
	config   Config
}

// NewExplainer creates an explainer from configuration. An empty provider
// name yields a disabled explainer, not an error.
func NewExplainer(config Config) (*Explainer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Explainer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (e *Explainer) IsEnabled() bool {
	return e.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled
func (e *Explainer) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name()
}

// GenerateNarrative produces a narrative for the report. When the explainer
// is disabled it returns (nil, nil); when the provider is unreachable it
// returns a Narrative carrying a warning instead of an error.
func (e *Explainer) GenerateNarrative(ctx context.Context, report model.Report) (*model.Narrative, error) {
	if e.provider == nil {
		return nil, nil
	}

	if !e.provider.IsAvailable(ctx) {
		return &model.Narrative{
			Enabled:  true,
			Provider: e.provider.Name(),
			Warnings: []string{fmt.Sprintf("provider %s unavailable, narrative skipped", e.provider.Name())},
		}, nil
	}

	resp, err := e.provider.Explain(ctx, ExplainRequest{
		Report:    report,
		Model:     e.config.Model,
		MaxTokens: e.config.MaxTokens,
	})
	if err != nil {
		return &model.Narrative{
			Enabled:  true,
			Provider: e.provider.Name(),
			Warnings: []string{fmt.Sprintf("narrative generation failed: %v", err)},
		}, nil
	}

	narrative := &model.Narrative{
		Enabled:     true,
		Provider:    e.provider.Name(),
		Model:       resp.Model,
		NarrativeMD: resp.Narrative,
	}
	if resp.Narrative == "" {
		narrative.Warnings = append(narrative.Warnings, "provider returned an empty narrative")
	}

	return narrative, nil
}
