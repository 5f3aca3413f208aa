package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stratusdial/convoiq/internal/model"
	"github.com/stratusdial/convoiq/internal/pipeline"
)

var (
	contactID    string
	channel      string
	disposition  string
	dispCategory string
	outJSON      bool
	outMD        string
	analyzeTO    time.Duration
	noCache      bool
	noFooter     bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Analyze a single interaction and evaluate automation rules",
	Long: `Analyze runs the full pipeline on one interaction:
- Classify sentiment with keyword-level explanations
- Detect the primary intent and its runners-up
- Map the agent disposition to a semantic category
- Update the contact's rolling sentiment profile
- Evaluate automation trigger rules with a full audit trail

Example:
  convoiq analyze "Sounds great, send me the contract"
  convoiq analyze "STOP texting me" --contact c-1024 --channel sms
  convoiq analyze "Call me back tomorrow" --disposition "Callback Requested" --json
  convoiq analyze "Not interested" --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Interaction flags
	analyzeCmd.Flags().StringVar(&contactID, "contact", "", "contact identifier (enables profile tracking)")
	analyzeCmd.Flags().StringVar(&channel, "channel", "", "interaction channel (sms, email, voice, chat)")
	analyzeCmd.Flags().StringVar(&disposition, "disposition", "", "agent-entered disposition label")
	analyzeCmd.Flags().StringVar(&dispCategory, "category", "", "agent-entered disposition category (positive, negative)")

	// Output flags
	analyzeCmd.Flags().BoolVar(&outJSON, "json", false, "print the full report as JSON")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "write a Markdown report to this path")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Behavior flags
	analyzeCmd.Flags().DurationVar(&analyzeTO, "timeout", 1*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the classification cache")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTO)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d characters", len(text))
		if contactID != "" {
			fmt.Fprintf(os.Stderr, " for contact %s", contactID)
		}
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.AnalyzeInteraction(ctx, model.Interaction{
		ContactID:           contactID,
		Channel:             channel,
		Text:                text,
		DispositionLabel:    disposition,
		DispositionCategory: dispCategory,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outMD != "" {
		if err := os.WriteFile(outMD, []byte(renderer.RenderMarkdown(report)), 0644); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outMD)
		}
	}
	if outJSON {
		return renderer.RenderJSON(report)
	}
	renderer.RenderSummary(report)
	return nil
}

// configureLLM resolves provider credentials from the environment. Keys are
// never read from the config file.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.LLM.StrictFacts = true // Always enforce

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
