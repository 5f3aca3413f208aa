package model

// Intent is the closed set of interaction intents
type Intent string

const (
	IntentPurchase     Intent = "purchase_intent"
	IntentCallback     Intent = "callback_request"
	IntentComplaint    Intent = "complaint"
	IntentQuestion     Intent = "question"
	IntentReferral     Intent = "referral"
	IntentObjection    Intent = "objection"
	IntentNotQualified Intent = "not_qualified"
	IntentOptOut       Intent = "opt_out"
	IntentUnknown      Intent = "unknown"
)

// IntentScore pairs an intent with its confidence
type IntentScore struct {
	Intent     Intent `json:"intent"`
	Confidence int    `json:"confidence"` // 0-100
}

// IntentResult is the immutable output of intent detection.
// SecondaryIntents is sorted by confidence descending and every entry's
// confidence is <= ConfidenceScore.
type IntentResult struct {
	PrimaryIntent    Intent        `json:"primary_intent"`
	ConfidenceScore  int           `json:"confidence_score"` // 0-100
	SecondaryIntents []IntentScore `json:"secondary_intents,omitempty"`
	HasConflict      bool          `json:"has_conflict"`
	ConflictReason   string        `json:"conflict_reason,omitempty"`
}
