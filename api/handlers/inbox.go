package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"trailangels/api/middleware"
	"trailangels/db"
	"trailangels/inbox"
	"trailangels/services"
)

// InboxEngine bundles one user's session inbox: the store, the panel state
// machine and the send pipeline, all sharing one id sequence.
type InboxEngine struct {
	Session inbox.Session
	Store   inbox.Store
	View    *inbox.View
	Sender  *inbox.Sender
}

// InboxRegistry hands out one engine per authenticated user and serializes
// access to it. Engines live for the process lifetime; with persistent=true
// they sit on the direct_messages table instead of per-session memory, so
// inbox history survives a restart.
type InboxRegistry struct {
	mu          sync.Mutex
	engines     map[string]*InboxEngine
	demoReplies bool
	seedDemo    bool
	persistent  bool
}

func NewInboxRegistry(demoReplies, seedDemo, persistent bool) *InboxRegistry {
	return &InboxRegistry{
		engines:     make(map[string]*InboxEngine),
		demoReplies: demoReplies,
		seedDemo:    seedDemo,
		persistent:  persistent,
	}
}

// Inboxes is the process-wide registry, set up at server start.
var Inboxes = NewInboxRegistry(true, true, false)

func (r *InboxRegistry) Engine(session inbox.Session) *InboxEngine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if engine, ok := r.engines[session.UserID]; ok {
		return engine
	}

	var store inbox.Store = inbox.NewMemoryStore()
	if r.persistent && db.ORM != nil {
		store = inbox.NewGormStore(db.ORM, session.UserID)
	}
	ids := &inbox.IDSequence{}
	existing := store.All()
	ids.ResumeAfter(existing)
	var notifier inbox.ReplyNotifier = inbox.NopReplyNotifier{}
	if r.demoReplies {
		notifier = inbox.DemoReplyNotifier{IDs: ids}
	}
	engine := &InboxEngine{
		Session: session,
		Store:   store,
		View:    inbox.NewView(store),
		Sender:  inbox.NewSender(session, store, notifier, ids),
	}
	if r.seedDemo && len(existing) == 0 {
		seedDemoMessages(store, session, ids)
	}
	r.engines[session.UserID] = engine
	return engine
}

// seedDemoMessages recreates the fixture conversation history every fresh
// session starts with: one unread note from Bighorn Betty and a finished
// exchange with Cascade Dave.
func seedDemoMessages(store inbox.Store, session inbox.Session, ids *inbox.IDSequence) {
	now := time.Now()
	store.Append(inbox.Message{
		ID:            ids.Next(),
		SenderID:      session.UserID,
		SenderName:    session.DisplayName,
		RecipientID:   "ta-2",
		RecipientName: "Cascade Dave",
		Body:          "Hi Dave, do you have space for a hiker to stay tomorrow night?",
		Timestamp:     now.Add(-24 * time.Hour),
		Read:          true,
	})
	store.Append(inbox.Message{
		ID:            ids.Next(),
		SenderID:      "ta-2",
		SenderName:    "Cascade Dave",
		RecipientID:   session.UserID,
		RecipientName: session.DisplayName,
		Body:          "You bet! The spare room is all yours. See you then.",
		Timestamp:     now.Add(-23 * time.Hour),
		Read:          true,
	})
	store.Append(inbox.Message{
		ID:            ids.Next(),
		SenderID:      "ta-1",
		SenderName:    "Bighorn Betty",
		RecipientID:   session.UserID,
		RecipientName: session.DisplayName,
		Body:          "Hey there! I saw you were asking about water sources. The creek at mile 179 is flowing well. Let me know if you need anything when you get to Wrightwood!",
		Timestamp:     now.Add(-2 * time.Hour),
		Read:          false,
	})
}

func sessionFromContext(c *gin.Context) (inbox.Session, int64, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return inbox.Session{}, 0, false
	}
	handle := c.GetString("handle")
	nickname := c.GetString("nickname")

	displayName := nickname
	profiles := services.NewProfileService()
	if profile, err := profiles.Get(c.Request.Context(), userID.(int64), nickname); err == nil && profile.TrailName != "" {
		displayName = profile.TrailName
	}
	return inbox.Session{UserID: handle, DisplayName: displayName}, userID.(int64), true
}

// ListConversationsHandler - the inbox list view
func ListConversationsHandler(c *gin.Context) {
	session, _, ok := sessionFromContext(c)
	if !ok {
		return
	}
	engine := Inboxes.Engine(session)

	angels := services.NewAngelService()
	previews := inbox.Previews(engine.Store.All(), session.UserID, func(id string) (string, bool) {
		return angels.DisplayName(c.Request.Context(), id)
	})

	c.JSON(http.StatusOK, gin.H{
		"conversations": previews,
		"has_unread":    engine.Store.HasUnread(session.UserID),
	})
}

// GetConversationHandler - opens one conversation (detail view). Viewing
// does not mark anything read.
func GetConversationHandler(c *gin.Context) {
	session, _, ok := sessionFromContext(c)
	if !ok {
		return
	}
	counterpartID := c.Param("angel_id")
	engine := Inboxes.Engine(session)
	engine.View.Open(counterpartID)

	convos := inbox.Conversations(engine.Store.All(), session.UserID)
	convo, found := convos[counterpartID]
	if !found {
		c.JSON(http.StatusOK, gin.H{"messages": []inbox.Message{}, "counterpart_id": counterpartID})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":       convo.Thread(),
		"counterpart_id": counterpartID,
		"unread_count":   convo.UnreadCount,
	})
}

// SendMessageHandler - sends a direct message to a trail angel
func SendMessageHandler(c *gin.Context) {
	session, userID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	counterpartID := c.Param("angel_id")

	var req struct {
		Body string `json:"body" binding:"required"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	counterpart := inbox.Counterpart{ID: counterpartID, Name: req.Name}
	angels := services.NewAngelService()
	if name, found := angels.DisplayName(c.Request.Context(), counterpartID); found {
		counterpart.Name = name
	}
	if counterpart.Name == "" {
		counterpart.Name = "Unknown"
	}

	engine := Inboxes.Engine(session)
	sent, err := engine.Sender.Send(counterpart, req.Body)
	if err != nil {
		middleware.InboxMessagesTotal.WithLabelValues("send", "rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty."})
		return
	}
	middleware.InboxMessagesTotal.WithLabelValues("send", "ok").Inc()

	if engine.Store.HasUnread(session.UserID) {
		_ = services.SendWsNotify(userID, "inbox_message", "New message from "+counterpart.Name)
	}

	c.JSON(http.StatusOK, gin.H{"message": sent})
}

// CloseInboxHandler - closing the panel clears all unread state, whether or
// not a conversation was ever opened.
func CloseInboxHandler(c *gin.Context) {
	session, _, ok := sessionFromContext(c)
	if !ok {
		return
	}
	engine := Inboxes.Engine(session)
	engine.View.Close()
	middleware.InboxMessagesTotal.WithLabelValues("close", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"has_unread": false})
}

// BackToListHandler - detail -> list navigation inside the panel, read flags
// untouched.
func BackToListHandler(c *gin.Context) {
	session, _, ok := sessionFromContext(c)
	if !ok {
		return
	}
	engine := Inboxes.Engine(session)
	engine.View.Back()
	c.JSON(http.StatusOK, gin.H{"state": engine.View.State()})
}

// UnreadBadgeHandler - the header badge
func UnreadBadgeHandler(c *gin.Context) {
	session, _, ok := sessionFromContext(c)
	if !ok {
		return
	}
	engine := Inboxes.Engine(session)
	c.JSON(http.StatusOK, gin.H{"has_unread": engine.Store.HasUnread(session.UserID)})
}
