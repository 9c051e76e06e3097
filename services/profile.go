package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"trailangels/db"
	"trailangels/models"
)

// ProfileService reads and edits the current user's profile record. Plain
// field assignment; the inbox only ever reads the display fields from it.
type ProfileService struct{}

func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// Get loads the user's profile, creating a default record on first access.
func (ps *ProfileService) Get(ctx context.Context, userID int64, nickname string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := db.GetReadOnlyDB(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{
			UserID:       userID,
			TrailName:    nickname,
			Status:       "hiking",
			Hiking:       true,
			ResponseRate: 100,
			LastActivity: "Active now",
		}
		if err := db.GetWriteDB(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// ProfileUpdate carries the editable display fields. Nil means "unchanged".
type ProfileUpdate struct {
	TrailName   *string `json:"trail_name"`
	Description *string `json:"description"`
	Avatar      *string `json:"avatar"`
	About       *string `json:"about"`
	Hiking      *bool   `json:"hiking"`
	Status      *string `json:"status"`
	BedCount    *int    `json:"bed_count"`
	Twitter     *string `json:"twitter"`
	Instagram   *string `json:"instagram"`
}

func (ps *ProfileService) Update(ctx context.Context, userID int64, nickname string, upd ProfileUpdate) (*models.UserProfile, error) {
	profile, err := ps.Get(ctx, userID, nickname)
	if err != nil {
		return nil, err
	}
	if upd.TrailName != nil {
		profile.TrailName = *upd.TrailName
	}
	if upd.Description != nil {
		profile.Description = *upd.Description
	}
	if upd.Avatar != nil {
		profile.Avatar = *upd.Avatar
	}
	if upd.About != nil {
		profile.About = *upd.About
	}
	if upd.Hiking != nil {
		profile.Hiking = *upd.Hiking
	}
	if upd.Status != nil {
		profile.Status = *upd.Status
	}
	if upd.BedCount != nil {
		profile.BedCount = *upd.BedCount
	}
	if upd.Twitter != nil {
		profile.Twitter = *upd.Twitter
	}
	if upd.Instagram != nil {
		profile.Instagram = *upd.Instagram
	}
	if err := db.GetWriteDB(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// SetServices replaces the offered-service list.
func (ps *ProfileService) SetServices(ctx context.Context, userID int64, nickname string, serviceIDs []string) (*models.UserProfile, error) {
	profile, err := ps.Get(ctx, userID, nickname)
	if err != nil {
		return nil, err
	}
	profile.Services = strings.Join(serviceIDs, ",")
	if err := db.GetWriteDB(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update services: %w", err)
	}
	return profile, nil
}

// AddressUpdate is the address form payload.
type AddressUpdate struct {
	Line1     string `json:"line1"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	IsPrivate bool   `json:"is_private"`
}

// SetAddress stores the address and re-geocodes the profile position when
// the address is complete enough.
func (ps *ProfileService) SetAddress(ctx context.Context, userID int64, nickname string, addr AddressUpdate) (*models.UserProfile, error) {
	profile, err := ps.Get(ctx, userID, nickname)
	if err != nil {
		return nil, err
	}
	profile.AddressLine1 = addr.Line1
	profile.AddressLine2 = addr.Line2
	profile.City = addr.City
	profile.State = addr.State
	profile.Zip = addr.Zip
	profile.Country = addr.Country
	profile.AddressPrivate = addr.IsPrivate

	if addr.City != "" && addr.State != "" && addr.Country != "" {
		if lat, lng, ok := geocodeAddress(addr.City, addr.State); ok {
			profile.Lat = lat
			profile.Lng = lng
		}
	}

	if err := db.GetWriteDB(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return profile, nil
}

// ContactUpdate is the contact form payload.
type ContactUpdate struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func (ps *ProfileService) SetContact(ctx context.Context, userID int64, nickname string, contact ContactUpdate) (*models.UserProfile, error) {
	profile, err := ps.Get(ctx, userID, nickname)
	if err != nil {
		return nil, err
	}
	profile.ContactFirstName = contact.FirstName
	profile.ContactLastName = contact.LastName
	profile.ContactPhone = contact.Phone
	profile.ContactEmail = contact.Email
	if err := db.GetWriteDB(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return profile, nil
}

// geocodeAddress is a placeholder for a real geocoding service: a small
// known-city table. Unknown addresses keep the previous position.
func geocodeAddress(city, state string) (lat, lng float64, ok bool) {
	switch strings.ToLower(city) + "/" + strings.ToLower(state) {
	case "wrightwood/ca":
		return 34.363, -117.633, true
	case "san diego/ca":
		return 32.7157, -117.1611, true
	case "cascade locks/or":
		return 45.666, -121.892, true
	case "damascus/va":
		return 36.634, -81.785, true
	}
	return 0, 0, false
}
