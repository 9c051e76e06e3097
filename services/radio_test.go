package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"trailangels/db"
	"trailangels/models"
)

type fakeGate struct {
	verdict Verdict
	err     error
	calls   int
}

func (g *fakeGate) Moderate(ctx context.Context, text string) (Verdict, error) {
	g.calls++
	return g.verdict, g.err
}

func setupRadioTest(t *testing.T) {
	if err := db.ConnectTestDB(); err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
}

func postCount(t *testing.T, body string) int64 {
	var count int64
	err := db.ORM.Model(&models.RadioPost{}).Where("body = ?", body).Count(&count).Error
	assert.NoError(t, err)
	return count
}

func TestPublishAcceptedPost(t *testing.T) {
	setupRadioTest(t)
	gate := &fakeGate{verdict: Verdict{IsAppropriate: true}}
	radio := NewRadioService(gate)

	post, err := radio.Publish(context.Background(), RadioAuthor{ID: "user-wired", Name: "Wired"}, "Water cache at mile 127 is stocked!")
	assert.NoError(t, err)
	assert.NotNil(t, post)
	assert.NotEmpty(t, post.PublicID)
	assert.Equal(t, 1, gate.calls)
	assert.EqualValues(t, 1, postCount(t, "Water cache at mile 127 is stocked!"))
}

func TestPublishRejectedByGate(t *testing.T) {
	setupRadioTest(t)
	gate := &fakeGate{verdict: Verdict{IsAppropriate: false, Reason: "spam"}}
	radio := NewRadioService(gate)

	post, err := radio.Publish(context.Background(), RadioAuthor{ID: "user-wired", Name: "Wired"}, "buy followers now")
	assert.Nil(t, post)

	var rejection *RejectionError
	assert.True(t, errors.As(err, &rejection))
	assert.Equal(t, "spam", rejection.Reason)
	assert.EqualValues(t, 0, postCount(t, "buy followers now"))
}

func TestPublishRejectedWithGenericReason(t *testing.T) {
	setupRadioTest(t)
	gate := &fakeGate{verdict: Verdict{IsAppropriate: false}}
	radio := NewRadioService(gate)

	_, err := radio.Publish(context.Background(), RadioAuthor{ID: "user-wired", Name: "Wired"}, "some flagged text")
	var rejection *RejectionError
	assert.True(t, errors.As(err, &rejection))
	assert.Equal(t, "Content was flagged as inappropriate.", rejection.Reason)
}

func TestPublishGateFailureNeverAccepts(t *testing.T) {
	setupRadioTest(t)
	gate := &fakeGate{err: errors.New("connection refused")}
	radio := NewRadioService(gate)

	post, err := radio.Publish(context.Background(), RadioAuthor{ID: "user-wired", Name: "Wired"}, "perfectly fine text")
	assert.Nil(t, post)

	var rejection *RejectionError
	assert.True(t, errors.As(err, &rejection))
	assert.Equal(t, "An error occurred while submitting your message.", rejection.Reason)
	assert.EqualValues(t, 0, postCount(t, "perfectly fine text"))
}

func TestPublishRejectsTooShortWithoutCallingGate(t *testing.T) {
	setupRadioTest(t)
	gate := &fakeGate{verdict: Verdict{IsAppropriate: true}}
	radio := NewRadioService(gate)

	_, err := radio.Publish(context.Background(), RadioAuthor{ID: "user-wired", Name: "Wired"}, "hi")
	var rejection *RejectionError
	assert.True(t, errors.As(err, &rejection))
	assert.Equal(t, 0, gate.calls)
}

func TestFeedReturnsNewestFirst(t *testing.T) {
	setupRadioTest(t)
	gate := &fakeGate{verdict: Verdict{IsAppropriate: true}}
	radio := NewRadioService(gate)

	_, err := radio.Publish(context.Background(), RadioAuthor{ID: "user-wired", Name: "Wired"}, "feed ordering post one")
	assert.NoError(t, err)
	_, err = radio.Publish(context.Background(), RadioAuthor{ID: "user-wired", Name: "Wired"}, "feed ordering post two")
	assert.NoError(t, err)

	posts, err := radio.Feed(context.Background(), 50)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(posts), 2)

	idxOne, idxTwo := -1, -1
	for i, p := range posts {
		switch p.Body {
		case "feed ordering post one":
			idxOne = i
		case "feed ordering post two":
			idxTwo = i
		}
	}
	assert.NotEqual(t, -1, idxOne)
	assert.NotEqual(t, -1, idxTwo)
	assert.Less(t, idxTwo, idxOne, "newer post should come first")
}
