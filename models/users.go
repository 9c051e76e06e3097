package models

import (
	"time"
)

// User is a registered account. Handle is the opaque participant id used in
// messages ("user-wired" style), distinct from the numeric primary key.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Nickname  string    `gorm:"size:60;uniqueIndex" json:"nickname"`
	Handle    string    `gorm:"size:80;uniqueIndex" json:"handle"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type UserTokens struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64  `gorm:"index:user_token_idx,unique" json:"user_id"`
	Token  string `gorm:"size:255;index:user_token_idx,unique" json:"token"`
}

func (UserTokens) TableName() string {
	return "user_tokens"
}

// UserProfile is the current user's editable profile record. The inbox only
// ever reads TrailName and Avatar from it.
type UserProfile struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID       int64   `gorm:"uniqueIndex" json:"user_id"`
	TrailName    string  `gorm:"size:255" json:"trail_name"`
	Description  string  `gorm:"size:255" json:"description"`
	Avatar       string  `gorm:"size:512" json:"avatar"`
	About        string  `gorm:"type:text" json:"about"`
	Hiking       bool    `json:"hiking"`
	Status       string  `gorm:"size:60" json:"status"`
	Services     string  `gorm:"size:512" json:"services"` // comma-separated service ids
	BedCount     int     `json:"bed_count"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	ResponseRate int     `json:"response_rate"`
	LastActivity string  `gorm:"size:60" json:"last_activity"`

	AddressLine1   string `gorm:"size:255" json:"address_line1"`
	AddressLine2   string `gorm:"size:255" json:"address_line2"`
	City           string `gorm:"size:120" json:"city"`
	State          string `gorm:"size:60" json:"state"`
	Zip            string `gorm:"size:20" json:"zip"`
	Country        string `gorm:"size:60" json:"country"`
	AddressPrivate bool   `json:"address_private"`

	ContactFirstName string `gorm:"size:120" json:"contact_first_name"`
	ContactLastName  string `gorm:"size:120" json:"contact_last_name"`
	ContactPhone     string `gorm:"size:40" json:"contact_phone"`
	ContactEmail     string `gorm:"size:255" json:"contact_email"`

	Twitter   string    `gorm:"size:120" json:"twitter,omitempty"`
	Instagram string    `gorm:"size:120" json:"instagram,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
