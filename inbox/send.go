package inbox

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyMessage = errors.New("message body is empty")

// Sender validates and commits outgoing direct messages for one session.
type Sender struct {
	session  Session
	store    Store
	notifier ReplyNotifier
	ids      *IDSequence
	now      func() time.Time
}

func NewSender(session Session, store Store, notifier ReplyNotifier, ids *IDSequence) *Sender {
	if notifier == nil {
		notifier = NopReplyNotifier{}
	}
	return &Sender{
		session:  session,
		store:    store,
		notifier: notifier,
		ids:      ids,
		now:      time.Now,
	}
}

// Send appends an outgoing message to the store and fires the reply
// notifier. Self-sent messages are committed pre-read. A blank body (after
// trimming) is rejected with ErrEmptyMessage and nothing is appended.
func (s *Sender) Send(counterpart Counterpart, body string) (Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Message{}, ErrEmptyMessage
	}
	msg := Message{
		ID:            s.ids.Next(),
		SenderID:      s.session.UserID,
		SenderName:    s.session.DisplayName,
		RecipientID:   counterpart.ID,
		RecipientName: counterpart.Name,
		Body:          body,
		Timestamp:     s.now(),
		Read:          true,
	}
	s.store.Append(msg)
	s.notifier.MessageSent(s.store, s.session, counterpart, msg)
	return msg, nil
}
