package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"trailangels/db"
	"trailangels/models"
)

const (
	RADIO_FEED_KEY    = "radio_feed" // Redis list of recent posts, newest first
	RADIO_FEED_SIZE   = 200
	RADIO_MIN_LENGTH  = 3
	RADIO_FEED_LIMIT  = 50
	genericRejectMsg  = "Content was flagged as inappropriate."
	genericFailureMsg = "An error occurred while submitting your message."
)

// RejectionError carries the user-facing reason a submission was not posted.
// It is a non-fatal, locally recoverable condition: the post simply does not
// exist and nothing is retried.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

// RadioAuthor identifies the submitting user for a radio post.
type RadioAuthor struct {
	ID   string
	Name string
}

// RadioService publishes and lists trail radio posts. Every submission goes
// through the moderation gate before it can exist.
type RadioService struct {
	gate ModerationGate
}

func NewRadioService(gate ModerationGate) *RadioService {
	return &RadioService{gate: gate}
}

// Publish screens a submission and, if accepted, persists it, refreshes the
// feed cache and fans the post out over RabbitMQ. A gate rejection or any
// gate failure returns *RejectionError; there is no default-accept path.
func (rs *RadioService) Publish(ctx context.Context, author RadioAuthor, body string) (*models.RadioPost, error) {
	if len([]rune(body)) < RADIO_MIN_LENGTH {
		return nil, &RejectionError{Reason: "Message must be at least 3 characters."}
	}

	verdict, err := rs.gate.Moderate(ctx, body)
	if err != nil {
		log.Printf("ERROR: moderation gate call failed: %v", err)
		return nil, &RejectionError{Reason: genericFailureMsg}
	}
	if !verdict.IsAppropriate {
		reason := verdict.Reason
		if reason == "" {
			reason = genericRejectMsg
		}
		return nil, &RejectionError{Reason: reason}
	}

	post := &models.RadioPost{
		PublicID:   uuid.NewString(),
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Body:       body,
		CreatedAt:  time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create radio post: %w", err)
	}

	rs.cachePost(ctx, post)

	if rabbitChannel != nil {
		event := RadioEvent{
			PostID:     post.PublicID,
			AuthorID:   post.AuthorID,
			AuthorName: post.AuthorName,
			Body:       post.Body,
			CreatedAt:  post.CreatedAt,
		}
		go func() {
			if err := PublishRadioEvent(context.Background(), event); err != nil {
				log.Printf("ERROR: failed to publish radio event: %v", err)
			}
		}()
	}

	return post, nil
}

// Feed returns the most recent posts, newest first: Redis cache when
// available, database otherwise.
func (rs *RadioService) Feed(ctx context.Context, limit int) ([]models.RadioPost, error) {
	if limit <= 0 || limit > RADIO_FEED_LIMIT {
		limit = RADIO_FEED_LIMIT
	}

	if posts, err := rs.feedFromCache(ctx, limit); err == nil && len(posts) > 0 {
		return posts, nil
	}

	var posts []models.RadioPost
	err := db.GetReadOnlyDB(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load radio feed: %w", err)
	}

	go rs.repopulateCache(context.Background(), posts)
	return posts, nil
}

func (rs *RadioService) cachePost(ctx context.Context, post *models.RadioPost) {
	if RedisClient == nil {
		return
	}
	data, err := json.Marshal(post)
	if err != nil {
		return
	}
	pipe := RedisClient.Pipeline()
	pipe.LPush(ctx, RADIO_FEED_KEY, data)
	pipe.LTrim(ctx, RADIO_FEED_KEY, 0, RADIO_FEED_SIZE-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("WARN: failed to cache radio post: %v", err)
	}
}

func (rs *RadioService) feedFromCache(ctx context.Context, limit int) ([]models.RadioPost, error) {
	if RedisClient == nil {
		return nil, fmt.Errorf("redis is not initialized")
	}
	items, err := RedisClient.LRange(ctx, RADIO_FEED_KEY, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	posts := make([]models.RadioPost, 0, len(items))
	for _, item := range items {
		var post models.RadioPost
		if err := json.Unmarshal([]byte(item), &post); err != nil {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (rs *RadioService) repopulateCache(ctx context.Context, posts []models.RadioPost) {
	if RedisClient == nil || len(posts) == 0 {
		return
	}
	pipe := RedisClient.Pipeline()
	pipe.Del(ctx, RADIO_FEED_KEY)
	// Posts arrive newest first; push oldest first so LPUSH restores order.
	for i := len(posts) - 1; i >= 0; i-- {
		data, err := json.Marshal(posts[i])
		if err != nil {
			continue
		}
		pipe.LPush(ctx, RADIO_FEED_KEY, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("WARN: failed to repopulate radio feed cache: %v", err)
	}
}
