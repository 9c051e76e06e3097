package inbox

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trailangels/db"
)

func TestMemoryStoreMostRecentFirst(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		store.Append(msgAt(fmt.Sprintf("dm-%08d", i), "ta-1", testUserID, base.Add(time.Duration(i)*time.Minute), false))
	}

	msgs := store.All()
	assert.Equal(t, []string{"dm-00000003", "dm-00000002", "dm-00000001"},
		[]string{msgs[0].ID, msgs[1].ID, msgs[2].ID})
}

func TestMemoryStoreAllReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Append(msgAt("dm-00000001", "ta-1", testUserID, time.Now(), false))

	msgs := store.All()
	msgs[0].Read = true
	assert.False(t, store.All()[0].Read)
}

func TestGormStoreContract(t *testing.T) {
	if err := db.ConnectTestDB(); err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	store := NewGormStore(db.ORM, testUserID)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	store.Append(msgAt("dm-00000001", "ta-1", testUserID, base, false))
	store.Append(msgAt("dm-00000002", testUserID, "ta-1", base.Add(time.Minute), true))
	// Messages for another owner's inbox must stay invisible.
	other := NewGormStore(db.ORM, "user-other")
	other.Append(msgAt("dm-00000001", "ta-1", "user-other", base, false))

	msgs := store.All()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "dm-00000002", msgs[0].ID)
	assert.True(t, store.HasUnread(testUserID))

	store.MarkAllRead()
	assert.False(t, store.HasUnread(testUserID))
	// Scoped mark: the other inbox is untouched.
	assert.True(t, other.HasUnread("user-other"))
}
