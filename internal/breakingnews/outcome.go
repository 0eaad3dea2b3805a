package breakingnews

import "encoding/json"

// Outcome is what happened to one recipient in a run.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeDelivered
	OutcomeTokenCleared
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDelivered:
		return "delivered"
	case OutcomeTokenCleared:
		return "token_cleared"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Skip and failure reasons.
const (
	ReasonNoPreference  = "no preference"
	ReasonNoDeviceToken = "no device token"
	ReasonNoHeadlines   = "no headlines"
	ReasonHeadlineFetch = "headline fetch failed"
	ReasonPushFailed    = "push failed"
	ReasonCancelled     = "run cancelled"
	ReasonClearFailed   = "token clear failed"
)

type RecipientResult struct {
	RecipientID string  `json:"recipient_id"`
	Outcome     Outcome `json:"outcome"`
	Reason      string  `json:"reason,omitempty"`
	Headline    string  `json:"headline,omitempty"`
	// Err is the underlying failure. For OutcomeTokenCleared it is the clear
	// write error, if the write failed.
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

func skipped(id, reason string) RecipientResult {
	return RecipientResult{RecipientID: id, Outcome: OutcomeSkipped, Reason: reason}
}

func failed(id, reason string, err error) RecipientResult {
	return RecipientResult{RecipientID: id, Outcome: OutcomeFailed, Reason: reason, Err: err, Error: err.Error()}
}
