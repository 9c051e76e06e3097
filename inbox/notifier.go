package inbox

import (
	"fmt"
	"time"
)

// ReplyNotifier is invoked after an outgoing message is committed. A real
// messaging backend plugs in here; the grouper and the view never see the
// difference.
type ReplyNotifier interface {
	MessageSent(store Store, session Session, counterpart Counterpart, sent Message)
}

// NopReplyNotifier does nothing. Production stand-in until a real backend
// delivers counterpart messages.
type NopReplyNotifier struct{}

func (NopReplyNotifier) MessageSent(Store, Session, Counterpart, Message) {}

// DemoReplyNotifier fabricates an immediate counterpart reply, one second
// after the user's message so ordering stays deterministic. Demo behavior
// only; it stands in for a real backend push.
type DemoReplyNotifier struct {
	IDs *IDSequence
}

const replyPreviewRunes = 20

func (n DemoReplyNotifier) MessageSent(store Store, session Session, counterpart Counterpart, sent Message) {
	preview := []rune(sent.Body)
	if len(preview) > replyPreviewRunes {
		preview = preview[:replyPreviewRunes]
	}
	reply := Message{
		ID:            n.IDs.Next(),
		SenderID:      counterpart.ID,
		SenderName:    counterpart.Name,
		RecipientID:   session.UserID,
		RecipientName: session.DisplayName,
		Body:          fmt.Sprintf("Thanks for reaching out! I'll get back to you soon about: %q...", string(preview)),
		Timestamp:     sent.Timestamp.Add(time.Second),
		Read:          false,
	}
	store.Append(reply)
}
