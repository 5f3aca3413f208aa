package model

import "time"

// Trend classifies the direction of a contact's sentiment history
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// SentimentRecord is one historical sentiment observation for a contact
type SentimentRecord struct {
	Score      int       `json:"score"`             // 0-100 (positive=100, neutral=50, negative=0)
	Confidence int       `json:"confidence"`        // 0-100, used as the aggregation weight
	Channel    string    `json:"channel,omitempty"` // call, sms, email
	RecordedAt time.Time `json:"recorded_at"`
}

// ContactSentimentProfile is the per-contact sentiment rollup. The profile
// lifecycle is owned by the calling collaborator; this core only creates it
// on the first analyzed interaction and updates it on every subsequent one.
type ContactSentimentProfile struct {
	ContactID           string            `json:"contact_id"`
	OverallScore        int               `json:"overall_score"` // confidence-weighted aggregate, 0-100
	SentimentChangeFlag bool              `json:"sentiment_change_flag"`
	Trend               Trend             `json:"trend"`
	History             []SentimentRecord `json:"history"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// Clone returns a deep copy so callers can't race against the stored profile
func (p *ContactSentimentProfile) Clone() *ContactSentimentProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.History = make([]SentimentRecord, len(p.History))
	copy(c.History, p.History)
	return &c
}
