package model

// SentimentLabel is the three-way sentiment classification
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Score maps a sentiment label onto the 0-100 aggregation scale
func (s SentimentLabel) Score() int {
	switch s {
	case SentimentPositive:
		return 100
	case SentimentNegative:
		return 0
	default:
		return 50
	}
}

// KeywordPolarity marks which lexicon a detected keyword came from
type KeywordPolarity string

const (
	PolarityPositive KeywordPolarity = "positive"
	PolarityNegative KeywordPolarity = "negative"
)

// DetectedKeyword records a single lexicon hit in the analyzed text
type DetectedKeyword struct {
	Keyword  string          `json:"keyword"`
	Polarity KeywordPolarity `json:"polarity"`
}

// SentimentResult is the immutable output of the sentiment analyzer
type SentimentResult struct {
	Sentiment        SentimentLabel    `json:"sentiment"`
	Confidence       int               `json:"confidence"` // 0-100
	DetectedKeywords []DetectedKeyword `json:"detected_keywords,omitempty"`
	IsMixedSentiment bool              `json:"is_mixed_sentiment"`
	DominantEmotion  string            `json:"dominant_emotion,omitempty"`
}

// KeywordSet is a per-call lexicon supplement. It is merged with the
// configured lexicons for a single Analyze call and never mutates them.
type KeywordSet struct {
	Positive []string `json:"positive,omitempty"`
	Negative []string `json:"negative,omitempty"`
}
