package inbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seedUnread(store Store) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.Append(msgAt("dm-00000001", "ta-1", testUserID, base, false))
	store.Append(msgAt("dm-00000002", testUserID, "ta-2", base.Add(time.Minute), true))
	store.Append(msgAt("dm-00000003", "ta-2", testUserID, base.Add(2*time.Minute), false))
}

func TestOpenDoesNotMarkRead(t *testing.T) {
	store := NewMemoryStore()
	seedUnread(store)

	view := NewView(store)
	view.Open("ta-1")

	assert.Equal(t, StateDetail, view.State())
	assert.Equal(t, "ta-1", view.Selected())
	// Viewing is distinct from marking read.
	assert.True(t, store.HasUnread(testUserID))
}

func TestCloseClearsAllUnread(t *testing.T) {
	store := NewMemoryStore()
	seedUnread(store)

	view := NewView(store)
	// Close from the list view, without ever opening a conversation.
	view.Close()

	assert.False(t, store.HasUnread(testUserID))
	for _, m := range store.All() {
		assert.True(t, m.Read, "message %s still unread", m.ID)
	}
	assert.Equal(t, StateList, view.State())
}

func TestCloseIsStoreWideNotConversationScoped(t *testing.T) {
	store := NewMemoryStore()
	seedUnread(store)

	view := NewView(store)
	view.Open("ta-1")
	view.Close()

	// ta-2's unread message is cleared too, even though ta-1 was open.
	convos := Conversations(store.All(), testUserID)
	assert.Equal(t, 0, convos["ta-2"].UnreadCount)
}

func TestCloseTwiceIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	seedUnread(store)

	view := NewView(store)
	view.Close()
	before := store.All()
	view.Close()

	assert.Equal(t, before, store.All())
	assert.False(t, store.HasUnread(testUserID))
}

func TestBackReturnsToListWithoutMarking(t *testing.T) {
	store := NewMemoryStore()
	seedUnread(store)

	view := NewView(store)
	view.Open("ta-2")
	view.Back()

	assert.Equal(t, StateList, view.State())
	assert.Equal(t, "", view.Selected())
	assert.True(t, store.HasUnread(testUserID))
}
