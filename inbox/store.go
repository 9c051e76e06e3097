package inbox

import "sync"

// Store holds a session's direct messages, most recent first. Messages are
// append-only; the only permitted mutation is flipping Read to true.
type Store interface {
	Append(msg Message)
	// All returns the full sequence, most recent first.
	All() []Message
	// MarkAllRead flips every message to read. Idempotent.
	MarkAllRead()
	// HasUnread reports whether any incoming message is still unread.
	HasUnread(currentUserID string) bool
}

// MemoryStore is the default session-lifetime store: state is lost when the
// process exits, which is the intended behavior for the demo inbox.
type MemoryStore struct {
	mu   sync.Mutex
	msgs []Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append([]Message{msg}, s.msgs...)
}

func (s *MemoryStore) All() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

func (s *MemoryStore) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.msgs {
		s.msgs[i].Read = true
	}
}

func (s *MemoryStore) HasUnread(currentUserID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.msgs {
		if !m.Read && m.SenderID != currentUserID {
			return true
		}
	}
	return false
}
