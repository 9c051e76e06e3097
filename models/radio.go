package models

import "time"

// RadioPost is one accepted trail radio submission. Posts are global and
// unthreaded; they never carry a read flag.
type RadioPost struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	PublicID   string    `gorm:"size:36;uniqueIndex" json:"id"`
	AuthorID   string    `gorm:"size:60;index" json:"author_id"`
	AuthorName string    `gorm:"size:255" json:"author_name"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (RadioPost) TableName() string {
	return "radio_posts"
}
