package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratusdial/convoiq/internal/aggregate"
	"github.com/stratusdial/convoiq/internal/cache"
	"github.com/stratusdial/convoiq/internal/intent"
	"github.com/stratusdial/convoiq/internal/llm"
	"github.com/stratusdial/convoiq/internal/model"
	"github.com/stratusdial/convoiq/internal/normalize"
	"github.com/stratusdial/convoiq/internal/rules"
	"github.com/stratusdial/convoiq/internal/semantic"
	"github.com/stratusdial/convoiq/internal/sentiment"
	"github.com/stratusdial/convoiq/internal/trigger"
	"github.com/stratusdial/convoiq/internal/worker"
)

// Pipeline orchestrates the complete analysis of one interaction: normalize,
// classify sentiment and intent, categorize the disposition, update the
// contact profile, evaluate automation rules, and optionally narrate the
// decision.
type Pipeline struct {
	analyzer  *sentiment.Analyzer
	detector  *intent.Detector
	matcher   *semantic.Matcher
	profiles  *aggregate.ProfileStore
	evaluator *trigger.Evaluator
	throttle  *worker.ContactThrottle
	cooldowns *worker.DispatchCooldown
	explainer *llm.Explainer // nil if disabled
	renderer  *Renderer

	resultCache cache.Cache // nil if disabled
	fingerprint string
	activeRules []model.AutomationRule
	cfg         *model.Config
}

// NewPipeline validates the configuration and builds the pipeline. Invalid
// configuration is rejected here, never discovered mid-evaluation.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	if err := rules.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	analyzer := sentiment.NewAnalyzer(cfg.Lexicon)

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".convoiq", "cache")
			}
		}
		if dir != "" {
			resultCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	var explainer *llm.Explainer
	if cfg.LLM.Provider != "" {
		e, err := llm.NewExplainer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			explainer = e
		}
	}

	// Active rules in priority order, highest first
	active := make([]model.AutomationRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		if r.Active {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})

	return &Pipeline{
		analyzer:    analyzer,
		detector:    intent.NewDetector(cfg.Intents, analyzer, cfg.Lexicon.Abbreviations),
		matcher:     semantic.NewMatcher(cfg.Semantic, resultCache),
		profiles:    aggregate.NewProfileStore(aggregate.NewAggregator(cfg.Aggregation)),
		evaluator:   trigger.NewEvaluator(),
		throttle:    worker.NewContactThrottle(cfg.Dispatch.PerContactPerMinute, cfg.Dispatch.Burst),
		cooldowns:   worker.NewDispatchCooldown(),
		explainer:   explainer,
		renderer:    NewRenderer(cfg.Output.IncludeFooter),
		resultCache: resultCache,
		fingerprint: lexiconFingerprint(cfg.Lexicon),
		activeRules: active,
		cfg:         cfg,
	}, nil
}

// Profiles exposes the profile store so callers can seed it with profiles
// they own
func (p *Pipeline) Profiles() *aggregate.ProfileStore {
	return p.profiles
}

// AnalyzeInteraction runs the full analysis for one interaction and returns
// the report. Degenerate inputs (empty text, no disposition, unknown contact)
// resolve to safe defaults, never errors.
func (p *Pipeline) AnalyzeInteraction(ctx context.Context, in model.Interaction) (*model.Report, error) {
	report := &model.Report{
		EvaluationID: uuid.NewString(),
		Interaction:  in,
		AnalyzedAt:   time.Now().UTC(),
	}

	report.Sentiment = p.analyzeSentiment(in.Text)

	intentResult := p.detector.DetectIntent(in.Text, in.DispositionLabel, in.DispositionCategory)
	report.Intent = &intentResult

	if in.DispositionLabel != "" {
		disp := p.matcher.CategorizeDisposition(in.DispositionLabel)
		report.Disposition = &disp
	}

	if in.ContactID != "" {
		report.Profile = p.profiles.Record(in.ContactID, report.Sentiment, in.Channel)
	}

	actx := model.AnalysisContext{
		Sentiment:   report.Sentiment,
		Intent:      report.Intent,
		Disposition: report.Disposition,
		Channel:     in.Channel,
		Profile:     report.Profile,
	}

	for _, rule := range p.activeRules {
		// A channel-bound rule only evaluates for interactions on that channel
		if rule.Channel != "" && in.Channel != "" && !strings.EqualFold(rule.Channel, in.Channel) {
			continue
		}

		eval := model.RuleEvaluation{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Result:   p.evaluator.Evaluate(rule.Condition, actx),
		}
		if eval.Result.Triggered {
			cooldownKey := p.cooldowns.Key(rule.ID, in.ContactID)
			switch {
			case in.ContactID == "":
				eval.Dispatched = true
			case !p.cooldowns.Ready(cooldownKey, rule.Cooldown):
				eval.SuppressedReason = "rule cooldown active"
			case !p.throttle.Allow(in.ContactID):
				eval.SuppressedReason = "per-contact dispatch limit reached"
			default:
				eval.Dispatched = true
				p.cooldowns.Mark(cooldownKey)
			}
		}
		report.Evaluations = append(report.Evaluations, eval)
	}

	// Narrative comes last and can never affect the decisions above
	if p.explainer != nil && p.explainer.IsEnabled() {
		narrative, err := p.explainer.GenerateNarrative(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: narrative generation failed: %v\n", err)
		} else if narrative != nil {
			report.LLM = narrative
		}
	}

	return report, nil
}

// analyzeSentiment classifies text, memoizing by canonical text so repeated
// bulk replies skip re-analysis. Cache entries are keyed by a lexicon
// fingerprint so config changes invalidate them.
func (p *Pipeline) analyzeSentiment(text string) model.SentimentResult {
	if p.resultCache == nil {
		return p.analyzer.Analyze(text)
	}

	canon, _ := normalize.Prepare(text, p.cfg.Lexicon.Abbreviations)
	key := cache.Key("sentiment", p.fingerprint, canon)

	if data, ok := p.resultCache.Get(key); ok {
		var cached model.SentimentResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	result := p.analyzer.Analyze(text)
	if data, err := json.Marshal(result); err == nil {
		_ = p.resultCache.Set(key, data, 0)
	}
	return result
}

// lexiconFingerprint condenses the lexicon config into a cache-key token
func lexiconFingerprint(cfg model.LexiconConfig) string {
	parts := []string{
		strings.Join(cfg.PositiveKeywords, ","),
		strings.Join(cfg.NegativeKeywords, ","),
	}
	abbrevs := make([]string, 0, len(cfg.Abbreviations))
	for k, v := range cfg.Abbreviations {
		abbrevs = append(abbrevs, k+"="+v)
	}
	sort.Strings(abbrevs)
	parts = append(parts, strings.Join(abbrevs, ","))
	return cache.Fingerprint(parts...)
}
