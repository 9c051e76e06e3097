package inbox

import (
	"log"

	"gorm.io/gorm"

	"trailangels/models"
)

// GormStore is the persistent Store variant: the same contract as
// MemoryStore backed by the direct_messages table, scoped to one owner.
type GormStore struct {
	db      *gorm.DB
	ownerID string
}

func NewGormStore(db *gorm.DB, ownerID string) *GormStore {
	return &GormStore{db: db, ownerID: ownerID}
}

func (s *GormStore) Append(msg Message) {
	row := models.DirectMessage{
		PublicID:      msg.ID,
		OwnerID:       s.ownerID,
		SenderID:      msg.SenderID,
		SenderName:    msg.SenderName,
		RecipientID:   msg.RecipientID,
		RecipientName: msg.RecipientName,
		Body:          msg.Body,
		Timestamp:     msg.Timestamp,
		Read:          msg.Read,
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("ERROR: failed to append message %s: %v", msg.ID, err)
	}
}

func (s *GormStore) All() []Message {
	var rows []models.DirectMessage
	err := s.db.
		Where("owner_id = ?", s.ownerID).
		Order("timestamp DESC").
		Order("public_id DESC").
		Find(&rows).Error
	if err != nil {
		log.Printf("ERROR: failed to list messages for %s: %v", s.ownerID, err)
		return nil
	}
	msgs := make([]Message, 0, len(rows))
	for _, r := range rows {
		msgs = append(msgs, Message{
			ID:            r.PublicID,
			SenderID:      r.SenderID,
			SenderName:    r.SenderName,
			RecipientID:   r.RecipientID,
			RecipientName: r.RecipientName,
			Body:          r.Body,
			Timestamp:     r.Timestamp,
			Read:          r.Read,
		})
	}
	return msgs
}

func (s *GormStore) MarkAllRead() {
	err := s.db.Model(&models.DirectMessage{}).
		Where("owner_id = ? AND read = ?", s.ownerID, false).
		Update("read", true).Error
	if err != nil {
		log.Printf("ERROR: failed to mark messages read for %s: %v", s.ownerID, err)
	}
}

func (s *GormStore) HasUnread(currentUserID string) bool {
	var count int64
	err := s.db.Model(&models.DirectMessage{}).
		Where("owner_id = ? AND read = ? AND sender_id <> ?", s.ownerID, false, currentUserID).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: failed to count unread for %s: %v", s.ownerID, err)
		return false
	}
	return count > 0
}
