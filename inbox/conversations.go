package inbox

import (
	"sort"
	"time"
)

// Conversation is the derived two-party slice of the store for one
// counterpart. It is recomputed from the store, never stored itself.
type Conversation struct {
	CounterpartID string
	// Messages holds the slice in store order (most recent first).
	Messages    []Message
	Latest      Message
	UnreadCount int
}

// Conversations groups messages by counterpart. Every message names exactly
// one non-current-user party, so the groups partition the store. Latest is
// the maximum under (Timestamp, ID); UnreadCount counts unread incoming
// messages only — self-authored messages are never unread.
func Conversations(msgs []Message, currentUserID string) map[string]Conversation {
	convos := make(map[string]Conversation)
	for _, m := range msgs {
		key := m.SenderID
		if key == currentUserID {
			key = m.RecipientID
		}
		c, ok := convos[key]
		if !ok {
			c = Conversation{CounterpartID: key, Latest: m}
		} else if newer(m, c.Latest) {
			c.Latest = m
		}
		c.Messages = append(c.Messages, m)
		if !m.Read && m.SenderID != currentUserID {
			c.UnreadCount++
		}
		convos[key] = c
	}
	return convos
}

// Thread returns a conversation's messages oldest first, for the detail view.
func (c Conversation) Thread() []Message {
	out := make([]Message, len(c.Messages))
	copy(out, c.Messages)
	sort.Slice(out, func(i, j int) bool {
		return newer(out[j], out[i])
	})
	return out
}

// Preview is one row of the conversation list view.
type Preview struct {
	CounterpartID   string    `json:"counterpart_id"`
	CounterpartName string    `json:"counterpart_name"`
	LatestBody      string    `json:"latest_body"`
	Timestamp       time.Time `json:"timestamp"`
	UnreadCount     int       `json:"unread_count"`
}

// NameLookup resolves a counterpart id against the host directory. It may
// miss: the directory is a separate, possibly stale collaborator.
type NameLookup func(id string) (string, bool)

// Previews derives the ordered conversation list: latest timestamp
// descending, counterpart id breaking ties for determinism. Display names
// come from the directory, then the message snapshot, then "Unknown".
func Previews(msgs []Message, currentUserID string, lookup NameLookup) []Preview {
	convos := Conversations(msgs, currentUserID)
	previews := make([]Preview, 0, len(convos))
	for id, c := range convos {
		previews = append(previews, Preview{
			CounterpartID:   id,
			CounterpartName: displayName(id, c.Latest, currentUserID, lookup),
			LatestBody:      c.Latest.Body,
			Timestamp:       c.Latest.Timestamp,
			UnreadCount:     c.UnreadCount,
		})
	}
	sort.Slice(previews, func(i, j int) bool {
		if !previews[i].Timestamp.Equal(previews[j].Timestamp) {
			return previews[i].Timestamp.After(previews[j].Timestamp)
		}
		return previews[i].CounterpartID < previews[j].CounterpartID
	})
	return previews
}

func displayName(counterpartID string, latest Message, currentUserID string, lookup NameLookup) string {
	if lookup != nil {
		if name, ok := lookup(counterpartID); ok {
			return name
		}
	}
	// Fall back to the name snapshotted on the message itself.
	if latest.SenderID == counterpartID && latest.SenderName != "" {
		return latest.SenderName
	}
	if latest.RecipientID == counterpartID && latest.RecipientName != "" {
		return latest.RecipientName
	}
	return "Unknown"
}
