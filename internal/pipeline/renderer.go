package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/stratusdial/convoiq/internal/model"
)

// Renderer formats analysis reports for the terminal or machine consumption.
type Renderer struct {
	includeFooter bool
}

func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON to stdout
func (r *Renderer) RenderJSON(report *model.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// RenderMarkdown returns the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Interaction Analysis\n\n")
	fmt.Fprintf(&b, "- **Evaluation ID:** %s\n", report.EvaluationID)
	if report.Interaction.ContactID != "" {
		fmt.Fprintf(&b, "- **Contact:** %s\n", report.Interaction.ContactID)
	}
	if report.Interaction.Channel != "" {
		fmt.Fprintf(&b, "- **Channel:** %s\n", report.Interaction.Channel)
	}
	fmt.Fprintf(&b, "- **Analyzed:** %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Sentiment\n\n")
	fmt.Fprintf(&b, "**%s** (confidence %d)\n\n", report.Sentiment.Sentiment, report.Sentiment.Confidence)
	if report.Sentiment.IsMixedSentiment {
		b.WriteString("Mixed signals detected.\n\n")
	}
	if report.Sentiment.DominantEmotion != "" {
		fmt.Fprintf(&b, "Dominant emotion: %s\n\n", report.Sentiment.DominantEmotion)
	}
	if len(report.Sentiment.DetectedKeywords) > 0 {
		b.WriteString("| Keyword | Polarity |\n|---------|----------|\n")
		for _, kw := range report.Sentiment.DetectedKeywords {
			fmt.Fprintf(&b, "| %s | %s |\n", kw.Keyword, kw.Polarity)
		}
		b.WriteString("\n")
	}

	if report.Intent != nil {
		b.WriteString("## Intent\n\n")
		fmt.Fprintf(&b, "**%s** (confidence %d)\n\n", report.Intent.PrimaryIntent, report.Intent.ConfidenceScore)
		if len(report.Intent.SecondaryIntents) > 0 {
			for _, sec := range report.Intent.SecondaryIntents {
				fmt.Fprintf(&b, "- %s (%d)\n", sec.Intent, sec.Confidence)
			}
			b.WriteString("\n")
		}
		if report.Intent.HasConflict {
			fmt.Fprintf(&b, "> Conflict: %s\n\n", report.Intent.ConflictReason)
		}
	}

	if report.Disposition != nil {
		b.WriteString("## Disposition\n\n")
		fmt.Fprintf(&b, "**%s %s** (confidence %d)\n\n",
			report.Interaction.DispositionLabel, report.Disposition.Category, report.Disposition.Confidence)
		if report.Disposition.IsAmbiguous {
			fmt.Fprintf(&b, "Ambiguous between: %s\n\n", joinCategories(report.Disposition.SuggestedCategories))
		}
	}

	if report.Profile != nil {
		b.WriteString("## Contact Profile\n\n")
		fmt.Fprintf(&b, "- Overall score: %d\n", report.Profile.OverallScore)
		fmt.Fprintf(&b, "- Trend: %s\n", report.Profile.Trend)
		fmt.Fprintf(&b, "- Interactions on record: %d\n", len(report.Profile.History))
		if report.Profile.SentimentChangeFlag {
			b.WriteString("- **Significant sentiment change detected**\n")
		}
		b.WriteString("\n")
	}

	if len(report.Evaluations) > 0 {
		b.WriteString("## Automation Rules\n\n")
		for _, eval := range report.Evaluations {
			status := "not triggered"
			if eval.Result.Triggered {
				status = "triggered"
				if !eval.Dispatched {
					status = "triggered, suppressed"
				}
			}
			fmt.Fprintf(&b, "### %s (%s)\n\n", eval.RuleName, status)
			for _, mc := range eval.Result.MatchedConditions {
				fmt.Fprintf(&b, "- ✓ %s=%s (confidence %d)\n", mc.Type, mc.Value, mc.Confidence)
			}
			for _, fc := range eval.Result.FailedConditions {
				fmt.Fprintf(&b, "- ✗ %s=%s: %s\n", fc.Type, fc.Value, fc.Reason)
			}
			if eval.SuppressedReason != "" {
				fmt.Fprintf(&b, "- Suppressed: %s\n", eval.SuppressedReason)
			}
			b.WriteString("\n")
		}
	}

	if report.LLM != nil && report.LLM.NarrativeMD != "" {
		b.WriteString("## Narrative\n\n")
		b.WriteString(report.LLM.NarrativeMD)
		b.WriteString("\n\n")
		for _, w := range report.LLM.Warnings {
			fmt.Fprintf(&b, "> Warning: %s\n", w)
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\n*Generated by convoiq*\n")
	}

	return b.String()
}

// RenderSummary prints a compact human-readable summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("Sentiment: %s (confidence %d)\n", report.Sentiment.Sentiment, report.Sentiment.Confidence)
	if report.Intent != nil {
		fmt.Printf("Intent:    %s (confidence %d)\n", report.Intent.PrimaryIntent, report.Intent.ConfidenceScore)
		if report.Intent.HasConflict {
			fmt.Printf("           conflict: %s\n", report.Intent.ConflictReason)
		}
	}
	if report.Disposition != nil {
		fmt.Printf("Category:  %s (confidence %d)\n", report.Disposition.Category, report.Disposition.Confidence)
	}
	if report.Profile != nil {
		fmt.Printf("Profile:   score %d, trend %s", report.Profile.OverallScore, report.Profile.Trend)
		if report.Profile.SentimentChangeFlag {
			fmt.Printf(" (significant change)")
		}
		fmt.Println()
	}
	triggered := 0
	dispatched := 0
	for _, eval := range report.Evaluations {
		if eval.Result.Triggered {
			triggered++
			if eval.Dispatched {
				dispatched++
			}
		}
	}
	fmt.Printf("Rules:     %d evaluated, %d triggered, %d dispatched\n",
		len(report.Evaluations), triggered, dispatched)
	for _, eval := range report.Evaluations {
		if !eval.Result.Triggered {
			continue
		}
		note := "dispatch"
		if !eval.Dispatched {
			note = eval.SuppressedReason
		}
		fmt.Printf("  - %s: %s\n", eval.RuleName, note)
	}
	if report.LLM != nil && report.LLM.NarrativeMD != "" {
		fmt.Printf("\n%s\n", report.LLM.NarrativeMD)
	}
}

func joinCategories(cats []model.SemanticCategory) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
