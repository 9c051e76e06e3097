package inbox

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestSender(store Store, notifier ReplyNotifier) *Sender {
	ids := &IDSequence{}
	if demo, ok := notifier.(DemoReplyNotifier); ok {
		demo.IDs = ids
		notifier = demo
	}
	s := NewSender(Session{UserID: testUserID, DisplayName: "Wired"}, store, notifier, ids)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return s
}

func TestSendRejectsBlankBody(t *testing.T) {
	store := NewMemoryStore()
	sender := newTestSender(store, nil)

	_, err := sender.Send(Counterpart{ID: "ta-1", Name: "Bighorn Betty"}, "   \n\t")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, store.All())
}

func TestSendCommitsPreReadMessage(t *testing.T) {
	store := NewMemoryStore()
	sender := newTestSender(store, nil)

	sent, err := sender.Send(Counterpart{ID: "ta-1", Name: "Bighorn Betty"}, "  Hello Betty  ")
	assert.NoError(t, err)
	assert.Equal(t, "Hello Betty", sent.Body)
	assert.Equal(t, testUserID, sent.SenderID)
	assert.Equal(t, "ta-1", sent.RecipientID)
	assert.True(t, sent.Read)

	msgs := store.All()
	assert.Len(t, msgs, 1)
	assert.False(t, store.HasUnread(testUserID))
}

func TestSendWithDemoAutoReply(t *testing.T) {
	store := NewMemoryStore()
	sender := newTestSender(store, DemoReplyNotifier{})

	_, err := sender.Send(Counterpart{ID: "ta-2", Name: "Cascade Dave"}, "Hi Dave")
	assert.NoError(t, err)

	msgs := store.All()
	assert.Len(t, msgs, 2)

	convos := Conversations(msgs, testUserID)
	convo := convos["ta-2"]
	assert.Equal(t, 1, convo.UnreadCount)

	// The reply comes from Dave, strictly after the user's message.
	assert.Equal(t, "ta-2", convo.Latest.SenderID)
	assert.Equal(t, "Cascade Dave", convo.Latest.SenderName)
	assert.True(t, strings.HasPrefix(convo.Latest.Body, "Thanks for reaching out!"))
	assert.Contains(t, convo.Latest.Body, "Hi Dave")
	assert.True(t, convo.Latest.Timestamp.After(msgs[1].Timestamp))
	assert.False(t, convo.Latest.Read)
}

func TestDemoReplyTruncatesLongBodies(t *testing.T) {
	store := NewMemoryStore()
	sender := newTestSender(store, DemoReplyNotifier{})

	long := strings.Repeat("water sources ahead ", 5)
	_, err := sender.Send(Counterpart{ID: "ta-2", Name: "Cascade Dave"}, long)
	assert.NoError(t, err)

	latest := Conversations(store.All(), testUserID)["ta-2"].Latest
	assert.NotContains(t, latest.Body, long)
	assert.Contains(t, latest.Body, string([]rune(long)[:replyPreviewRunes]))
}

func TestIDSequenceOrdersLexically(t *testing.T) {
	ids := &IDSequence{}
	prev := ids.Next()
	for i := 0; i < 100; i++ {
		next := ids.Next()
		assert.True(t, next > prev, "%s should sort after %s", next, prev)
		prev = next
	}
}
