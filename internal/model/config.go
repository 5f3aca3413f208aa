package model

import "time"

// Config is the full configuration surface of the analysis core. It is loaded
// once, validated at acceptance time, and treated as immutable afterwards so
// every classifier can read it concurrently without synchronization.
type Config struct {
	Lexicon     LexiconConfig     `yaml:"lexicon"`
	Intents     IntentConfig      `yaml:"intents"`
	Semantic    SemanticConfig    `yaml:"semantic"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Rules       []AutomationRule  `yaml:"rules"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Dispatch    DispatchConfig    `yaml:"dispatch"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// LexiconConfig holds the sentiment keyword tables
type LexiconConfig struct {
	PositiveKeywords []string            `yaml:"positive_keywords"`
	NegativeKeywords []string            `yaml:"negative_keywords"`
	Abbreviations    map[string]string   `yaml:"abbreviations"` // SMS shorthand expanded before matching
	Emotions         map[string][]string `yaml:"emotions"`      // emotion tag -> keywords
}

// IntentConfig holds the per-intent pattern sets
type IntentConfig struct {
	Patterns      map[string][]string `yaml:"patterns"` // intent name -> phrases
	OptOutPhrases []string            `yaml:"opt_out_phrases"`
}

// SemanticConfig holds the disposition exemplar tables
type SemanticConfig struct {
	Exemplars          map[string][]string `yaml:"exemplars"` // category name -> exemplar phrases
	AmbiguityTolerance float64             `yaml:"ambiguity_tolerance"`
	MinScore           float64             `yaml:"min_score"` // below this the label maps to unknown
}

// AggregationConfig tunes the cross-channel sentiment rollup
type AggregationConfig struct {
	ChangeThreshold int     `yaml:"change_threshold"`  // |new-old| >= threshold sets the change flag
	MinTrendPoints  int     `yaml:"min_trend_points"`  // fewer points -> insufficient_data
	SlopeThreshold  float64 `yaml:"slope_threshold"`   // |slope| above this is improving/declining
	MaxHistory      int     `yaml:"max_history"`       // oldest records beyond this are dropped
}

// CacheConfig controls the classification result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// DispatchConfig throttles automation dispatch per contact
type DispatchConfig struct {
	PerContactPerMinute float64 `yaml:"per_contact_per_minute"`
	Burst               int     `yaml:"burst"`
}

// LLMConfig configures the optional decision-narrative provider
type LLMConfig struct {
	Provider    string `yaml:"provider"` // openai, anthropic, ollama, "" = disabled
	Model       string `yaml:"model"`
	APIKey      string `yaml:"-"` // from environment only, never written to disk
	BaseURL     string `yaml:"base_url"`
	Timeout     int    `yaml:"timeout"` // seconds
	MaxTokens   int    `yaml:"max_tokens"`
	StrictFacts bool   `yaml:"strict_facts"` // narrative may only restate report data
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in configuration, including the default
// lexicons, intent patterns and disposition exemplars
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			PositiveKeywords: []string{
				"great", "good", "excellent", "awesome", "amazing", "wonderful",
				"perfect", "love", "interested", "happy", "thanks", "thank you",
				"appreciate", "yes", "definitely", "sounds good", "helpful",
				"impressed", "fantastic",
			},
			NegativeKeywords: []string{
				"bad", "terrible", "awful", "horrible", "worst", "hate",
				"angry", "frustrated", "annoyed", "upset", "disappointed",
				"not interested", "waste", "scam", "rude", "never", "useless",
				"expensive", "unacceptable",
			},
			Abbreviations: map[string]string{
				"thx":  "thanks",
				"ty":   "thank you",
				"gr8":  "great",
				"u":    "you",
				"ur":   "your",
				"pls":  "please",
				"plz":  "please",
				"msg":  "message",
				"np":   "no problem",
				"asap": "as soon as possible",
				"l8r":  "later",
				"b4":   "before",
				"k":    "okay",
			},
			Emotions: map[string][]string{
				"frustrated": {"frustrated", "fed up", "sick of", "annoyed", "irritated"},
				"happy":      {"happy", "glad", "delighted", "excited", "thrilled"},
				"angry":      {"angry", "furious", "outraged", "mad"},
				"confused":   {"confused", "unclear", "don't understand", "makes no sense"},
				"urgent":     {"urgent", "immediately", "right away", "as soon as possible"},
			},
		},
		Intents: IntentConfig{
			Patterns: map[string][]string{
				string(IntentPurchase): {
					"buy", "purchase", "sign up", "pricing", "how much",
					"ready to move forward", "send the contract", "get started",
					"upgrade", "place an order",
				},
				string(IntentCallback): {
					"call me back", "callback", "call me", "reach me",
					"call later", "try again later", "better time to talk",
				},
				string(IntentComplaint): {
					"complaint", "unacceptable", "terrible service",
					"never again", "speak to a manager", "refund",
					"disappointed", "worst experience",
				},
				string(IntentQuestion): {
					"how does", "what is", "when will", "where is",
					"can you explain", "could you", "do you offer",
					"is there", "wondering",
				},
				string(IntentReferral): {
					"refer", "referral", "my friend", "my colleague",
					"someone who", "pass along", "might be interested in you",
				},
				string(IntentObjection): {
					"too expensive", "not sure", "need to think",
					"talk to my", "already have", "not right now",
					"over budget", "maybe later",
				},
				string(IntentNotQualified): {
					"wrong number", "not the right person", "don't own",
					"do not own", "no longer work", "moved away", "not applicable",
				},
			},
			OptOutPhrases: []string{
				"stop", "stopall", "unsubscribe", "do not call", "don't call",
				"do not contact", "don't contact", "remove me", "opt out",
				"take me off", "no more messages",
			},
		},
		Semantic: SemanticConfig{
			Exemplars: map[string][]string{
				string(CategoryPositiveOutcome): {
					"interested", "shows interest", "sale made", "sold",
					"closed won", "signed up", "purchased", "demo booked",
					"meeting set", "success",
				},
				string(CategoryNegativeOutcome): {
					"not interested", "wrong number", "do not call",
					"declined", "closed lost", "refused", "hung up", "dead lead",
				},
				string(CategoryNeedsFollowup): {
					"callback", "call back", "voicemail", "left message",
					"no answer", "busy", "try again", "follow up", "reschedule",
				},
				string(CategoryQualifiedLead): {
					"qualified", "good fit", "decision maker",
					"budget confirmed", "hot lead", "ready to buy",
				},
				string(CategoryUnqualifiedLead): {
					"unqualified", "not qualified", "no budget", "not a fit",
					"out of territory", "wrong industry",
				},
			},
			AmbiguityTolerance: 0.10,
			MinScore:           0.35,
		},
		Aggregation: AggregationConfig{
			ChangeThreshold: 30,
			MinTrendPoints:  3,
			SlopeThreshold:  5,
			MaxHistory:      50,
		},
		Rules: []AutomationRule{
			{
				ID:       "optout-compliance",
				Name:     "Opt-out compliance hold",
				Priority: 100,
				Active:   true,
				Condition: &TriggerCondition{
					Type:                ConditionIntent,
					Value:               string(IntentOptOut),
					ConfidenceThreshold: 90,
				},
			},
			{
				ID:       "hot-lead-followup",
				Name:     "Hot lead follow-up",
				Priority: 50,
				Active:   true,
				Cooldown: 1 * time.Hour,
				Condition: &TriggerCondition{
					Logic: LogicAnd,
					Conditions: []TriggerCondition{
						{Type: ConditionSentiment, Value: string(SentimentPositive), ConfidenceThreshold: 60},
						{Type: ConditionIntent, Value: string(IntentPurchase), ConfidenceThreshold: 50},
					},
				},
			},
			{
				ID:       "at-risk-alert",
				Name:     "At-risk contact alert",
				Priority: 40,
				Active:   true,
				Condition: &TriggerCondition{
					Logic: LogicOr,
					Conditions: []TriggerCondition{
						{Type: ConditionSentiment, Value: string(SentimentNegative), ConfidenceThreshold: 70},
						{Type: ConditionIntent, Value: string(IntentComplaint), ConfidenceThreshold: 60},
					},
				},
			},
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // defaults to ~/.convoiq/cache at runtime
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 8,
		},
		Dispatch: DispatchConfig{
			PerContactPerMinute: 2,
			Burst:               2,
		},
		LLM: LLMConfig{
			Provider:    "", // disabled by default
			Timeout:     30,
			MaxTokens:   800,
			StrictFacts: true,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
