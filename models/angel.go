package models

import (
	"encoding/json"
	"strings"
)

// TrailAngel is a directory entry for a volunteer host. The list-valued
// columns (services, availability, gallery) are stored comma-separated and
// serialized as JSON arrays, see MarshalJSON.
type TrailAngel struct {
	ID               string   `gorm:"primaryKey;size:60" json:"id"`
	Name             string   `gorm:"size:255" json:"name"`
	Location         string   `gorm:"size:255" json:"location"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Services         string   `gorm:"size:512" json:"-"`  // comma-separated service ids
	Availability     string   `gorm:"size:1024" json:"-"` // comma-separated YYYY-MM-DD dates
	Gallery          string   `gorm:"size:2048" json:"-"` // comma-separated image URLs
	DonationExpected bool     `json:"donation_expected"`
	About            string   `gorm:"type:text" json:"about"`
	Badges           string   `gorm:"size:512" json:"badges"`
	Verified         bool     `json:"verified"`
	LastActivity     string   `gorm:"size:60" json:"last_activity"`
	ResponseRate     int      `json:"response_rate"`
	Hiking           bool     `json:"hiking"`
	Twitter          string   `gorm:"size:120" json:"twitter,omitempty"`
	Instagram        string   `gorm:"size:120" json:"instagram,omitempty"`
	Reviews          []Review `gorm:"foreignKey:AngelID" json:"reviews,omitempty"`
}

func (TrailAngel) TableName() string {
	return "trail_angels"
}

// trailAngelWire carries the list-valued columns as arrays on the wire.
type trailAngelWire struct {
	Services     []string `json:"services"`
	Availability []string `json:"availability"`
	Gallery      []string `json:"gallery"`
}

func (a TrailAngel) MarshalJSON() ([]byte, error) {
	type plain TrailAngel
	return json.Marshal(struct {
		plain
		trailAngelWire
	}{plain(a), trailAngelWire{
		Services:     SplitServices(a.Services),
		Availability: SplitServices(a.Availability),
		Gallery:      SplitServices(a.Gallery),
	}})
}

func (a *TrailAngel) UnmarshalJSON(data []byte) error {
	type plain TrailAngel
	var wire struct {
		plain
		trailAngelWire
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*a = TrailAngel(wire.plain)
	a.Services = strings.Join(wire.trailAngelWire.Services, ",")
	a.Availability = strings.Join(wire.trailAngelWire.Availability, ",")
	a.Gallery = strings.Join(wire.trailAngelWire.Gallery, ",")
	return nil
}

// SplitServices splits a stored comma-separated service list.
func SplitServices(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// ServiceIDs splits the stored service list.
func (a TrailAngel) ServiceIDs() []string {
	return SplitServices(a.Services)
}

// AvailabilityDates splits the stored availability list.
func (a TrailAngel) AvailabilityDates() []string {
	return SplitServices(a.Availability)
}

// GalleryURLs splits the stored gallery list.
func (a TrailAngel) GalleryURLs() []string {
	return SplitServices(a.Gallery)
}

// OffersService reports whether the angel lists the given service id.
func (a TrailAngel) OffersService(id string) bool {
	for _, s := range a.ServiceIDs() {
		if s == id {
			return true
		}
	}
	return false
}

// Review is a hiker's review of a trail angel.
type Review struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AngelID string `gorm:"size:60;index" json:"-"`
	Author  string `gorm:"size:255" json:"author"`
	Rating  int    `json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`
	Date    string `gorm:"size:20" json:"date"`
}

func (Review) TableName() string {
	return "reviews"
}

// MapMarker is the shape the map surface consumes.
type MapMarker struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}
