// Package projector derives privacy-safe projected messages from raw
// messages. This is the single sanitization point in the pipeline:
// everything downstream of the projector sees only redacted text, and
// the internal id/user_id fields do not exist on the projected type.
package projector

import (
	"github.com/crimson-sun/aurora/internal/engine/redactor"
	"github.com/crimson-sun/aurora/internal/model"
)

// Projector maps RawMessage to ProjectedMessage.
type Projector struct {
	red *redactor.Redactor
}

// New creates a Projector using the given redaction chain.
func New(red *redactor.Redactor) *Projector {
	return &Projector{red: red}
}

// Project redacts the message text, copies the author name verbatim,
// and truncates the timestamp to its date portion. A missing timestamp
// leaves Date empty, which omits it from serialized output.
func (p *Projector) Project(msg model.RawMessage) model.ProjectedMessage {
	out := model.ProjectedMessage{
		UserName: msg.UserName,
		Text:     p.red.Redact(msg.Text),
	}
	if msg.Timestamp != "" {
		out.Date = datePart(msg.Timestamp)
	}
	return out
}

// ProjectBatch projects a slice of messages, preserving order.
func (p *Projector) ProjectBatch(msgs []model.RawMessage) []model.ProjectedMessage {
	out := make([]model.ProjectedMessage, len(msgs))
	for i, m := range msgs {
		out[i] = p.Project(m)
	}
	return out
}

// datePart returns the first 10 bytes of an ISO-8601 timestamp
// (YYYY-MM-DD).
func datePart(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
