package inbox

import "sync"

// ViewState is the inbox panel's navigation state.
type ViewState string

const (
	StateList   ViewState = "list"
	StateDetail ViewState = "detail"
)

// View is the inbox panel state machine. Selecting a conversation moves
// List -> Detail without touching any read flag; viewing is distinct from
// marking read. Closing the panel marks the whole store read, no matter how
// deep the navigation was when it closed.
type View struct {
	mu       sync.Mutex
	store    Store
	state    ViewState
	selected string
}

func NewView(store Store) *View {
	return &View{store: store, state: StateList}
}

// Open selects a conversation (List -> Detail).
func (v *View) Open(counterpartID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = StateDetail
	v.selected = counterpartID
}

// Back returns to the conversation list without closing the panel.
func (v *View) Back() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = StateList
	v.selected = ""
}

// Close closes the panel and clears all unread state. Closing from the List
// state, or closing twice in a row, behaves the same: MarkAllRead is
// idempotent.
func (v *View) Close() {
	v.mu.Lock()
	v.state = StateList
	v.selected = ""
	v.mu.Unlock()
	v.store.MarkAllRead()
}

func (v *View) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Selected returns the open conversation's counterpart id, or "" in List.
func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}
