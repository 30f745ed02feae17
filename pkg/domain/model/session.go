package model

import (
	"time"

	"github.com/secmon-lab/tubeqa/pkg/domain/types"
)

// QAExchange is one question/answer pair with its position in the conversation
type QAExchange struct {
	Query    string
	Response string
	Index    int
}

// Session is the state of one user session. It owns the write-once summary and
// the append-only conversation log. A session is bound to exactly one knowledge
// engine handle for its whole lifetime; it must not be shared across sessions.
//
// Session itself is not safe for concurrent use. Each user-initiated action
// runs to completion before the next is accepted.
type Session struct {
	ID        types.SessionID
	CreatedAt time.Time

	// Video is set after a successful URL resolution, Ready after the
	// transcript has been indexed into the knowledge engine.
	Video *VideoReference
	Ready bool

	summary    string
	hasSummary bool
	exchanges  []QAExchange
}

// NewSession creates an empty session state
func NewSession() *Session {
	return &Session{
		ID:        types.NewSessionID(),
		CreatedAt: time.Now().UTC(),
	}
}

// HasSummary reports whether the summary has been generated already
func (s *Session) HasSummary() bool {
	return s.hasSummary
}

// Summary returns the memoized summary. Valid only when HasSummary is true.
func (s *Session) Summary() string {
	return s.summary
}

// SetSummary stores the generated summary. The field is write-once: a second
// call is ignored so a stored summary can never be replaced.
func (s *Session) SetSummary(summary string) {
	if s.hasSummary {
		return
	}
	s.summary = summary
	s.hasSummary = true
}

// AppendExchange appends a question/answer pair to the conversation log and
// returns the stored entry. The index always equals the log length before the
// append, so ordering matches call order.
func (s *Session) AppendExchange(query, response string) QAExchange {
	exchange := QAExchange{
		Query:    query,
		Response: response,
		Index:    len(s.exchanges),
	}
	s.exchanges = append(s.exchanges, exchange)
	return exchange
}

// Exchanges returns a copy of the conversation log in append order
func (s *Session) Exchanges() []QAExchange {
	out := make([]QAExchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}
