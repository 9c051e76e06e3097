// Package inbox implements the session-scoped direct-message engine:
// an append-only message store, derived per-counterpart conversations,
// the inbox panel's read-state machine and the outgoing send pipeline.
package inbox

import (
	"fmt"
	"sync"
	"time"
)

// Message is one direct message between the inbox owner and a counterpart.
// Messages are immutable once appended except for the Read flag.
type Message struct {
	ID            string    `json:"id"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	RecipientID   string    `json:"recipient_id"`
	RecipientName string    `json:"recipient_name"`
	Body          string    `json:"body"`
	Timestamp     time.Time `json:"timestamp"`
	Read          bool      `json:"read"`
}

// Counterpart identifies the other party of a conversation.
type Counterpart struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session identifies the inbox owner. It is passed explicitly to every
// component that needs the current user's id or display name.
type Session struct {
	UserID      string
	DisplayName string
}

// IDSequence issues session-unique message ids. Ids are zero-padded so their
// lexical order matches generation order, which is what breaks timestamp ties
// when selecting a conversation's latest message.
type IDSequence struct {
	mu sync.Mutex
	n  uint64
}

func (s *IDSequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("dm-%08d", s.n)
}

// ResumeAfter advances the sequence past every id already present in msgs,
// so a sequence attached to a persistent store never reissues an id.
func (s *IDSequence) ResumeAfter(msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range msgs {
		var n uint64
		if _, err := fmt.Sscanf(m.ID, "dm-%d", &n); err == nil && n > s.n {
			s.n = n
		}
	}
}

// newer reports whether a orders strictly after b under (Timestamp, ID).
func newer(a, b Message) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}
