package model

// RawMessage is a member message exactly as returned by the upstream
// source. ID and UserID are internal identifiers that must never cross
// the projection boundary. Immutable once fetched.
type RawMessage struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Text      string `json:"message"`
	Timestamp string `json:"timestamp"` // ISO-8601; empty means absent
}

// ProjectedMessage is the privacy-safe view of a RawMessage handed to
// the generation service. It has no identifier fields by construction,
// and Text has passed through the redaction chain.
type ProjectedMessage struct {
	UserName string `json:"user_name"`
	Text     string `json:"message"`
	Date     string `json:"date,omitempty"` // YYYY-MM-DD
}

// ScoredCandidate pairs a raw message with its similarity to the
// question. Used only during ranking, never serialized.
type ScoredCandidate struct {
	Message    RawMessage
	Similarity float64
}
