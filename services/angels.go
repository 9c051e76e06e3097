package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"

	"trailangels/db"
	"trailangels/models"
)

// FilterState is the host list filter: all fields are AND-ed, empty fields
// match everything.
type FilterState struct {
	Name       string   `form:"name" json:"name"`
	Location   string   `form:"location" json:"location"`
	Services   []string `form:"services" json:"services"`
	NoDonation bool     `form:"no_donation" json:"no_donation"`
}

// MatchesFilter is the pure predicate the host list and map are filtered
// with. No I/O, no state.
func MatchesFilter(angel models.TrailAngel, f FilterState) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(angel.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(angel.Location), strings.ToLower(f.Location)) {
		return false
	}
	for _, svc := range f.Services {
		if !angel.OffersService(svc) {
			return false
		}
	}
	if f.NoDonation && angel.DonationExpected {
		return false
	}
	return true
}

// AngelService reads the trail angel directory.
type AngelService struct{}

func NewAngelService() *AngelService {
	return &AngelService{}
}

func (as *AngelService) List(ctx context.Context, f FilterState) ([]models.TrailAngel, error) {
	var angels []models.TrailAngel
	err := db.GetReadOnlyDB(ctx).Preload("Reviews").Order("id").Find(&angels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trail angels: %w", err)
	}
	filtered := make([]models.TrailAngel, 0, len(angels))
	for _, a := range angels {
		if MatchesFilter(a, f) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (as *AngelService) Get(ctx context.Context, id string) (*models.TrailAngel, error) {
	var angel models.TrailAngel
	err := db.GetReadOnlyDB(ctx).Preload("Reviews").Where("id = ?", id).First(&angel).Error
	if err != nil {
		return nil, err
	}
	return &angel, nil
}

// Markers returns the shape the map surface consumes.
func (as *AngelService) Markers(ctx context.Context) ([]models.MapMarker, error) {
	var angels []models.TrailAngel
	err := db.GetReadOnlyDB(ctx).Select("id", "name", "lat", "lng").Order("id").Find(&angels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load markers: %w", err)
	}
	markers := make([]models.MapMarker, 0, len(angels))
	for _, a := range angels {
		markers = append(markers, models.MapMarker{ID: a.ID, Name: a.Name, Lat: a.Lat, Lng: a.Lng})
	}
	return markers, nil
}

// DisplayName resolves a counterpart id against the directory. Used by the
// inbox preview builder; missing ids are fine, the directory may be stale.
func (as *AngelService) DisplayName(ctx context.Context, id string) (string, bool) {
	var angel models.TrailAngel
	err := db.GetReadOnlyDB(ctx).Select("id", "name").Where("id = ?", id).First(&angel).Error
	if err != nil {
		return "", false
	}
	return angel.Name, true
}

// AllServiceIDs is the catalog of offerable services.
var AllServiceIDs = []string{
	"rides", "bathroom", "room", "couch-floor", "camping",
	"kitchen", "storage", "packages", "laundry", "wifi",
}

// SeedDemo fills an empty directory with the canonical fixture hosts plus a
// handful of generated ones.
func (as *AngelService) SeedDemo(ctx context.Context, generated int) error {
	var count int64
	if err := db.GetWriteDB(ctx).Model(&models.TrailAngel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	angels := fixtureAngels()
	for i := 0; i < generated; i++ {
		angels = append(angels, generatedAngel(len(angels)+1))
	}
	return db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range angels {
			if err := tx.Create(&angels[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// upcomingDates builds a stored availability list of count days starting
// start days from now, so demo calendars always show future dates.
func upcomingDates(start, count int) string {
	dates := make([]string, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, time.Now().AddDate(0, 0, start+i).Format("2006-01-02"))
	}
	return strings.Join(dates, ",")
}

// scatteredDates is upcomingDates for non-consecutive day offsets.
func scatteredDates(offsets ...int) string {
	dates := make([]string, 0, len(offsets))
	for _, off := range offsets {
		dates = append(dates, time.Now().AddDate(0, 0, off).Format("2006-01-02"))
	}
	return strings.Join(dates, ",")
}

func picsumGallery(seeds ...int) string {
	urls := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		urls = append(urls, fmt.Sprintf("https://picsum.photos/seed/%d/600/400", seed))
	}
	return strings.Join(urls, ",")
}

func fixtureAngels() []models.TrailAngel {
	return []models.TrailAngel{
		{
			ID: "ta-1", Name: "Bighorn Betty", Location: "Wrightwood, CA",
			Lat: 34.363, Lng: -117.633,
			Services:         "rides,kitchen,storage,packages,wifi",
			Availability:     scatteredDates(2, 3, 14),
			Gallery:          picsumGallery(101, 102, 103),
			DonationExpected: true,
			About:            "Been helping PCT hikers for over 15 years. My place is your place. Got two friendly dogs and a cat. I make a mean chili, so come hungry!",
			Badges:           "PCT Veteran,15+ Years of Service",
			Verified:         true, LastActivity: "2 hours ago", ResponseRate: 95,
			Twitter: "bighornbetty", Instagram: "bighornbetty",
			Reviews: []models.Review{
				{Author: "Guthook", Rating: 5, Comment: "Betty is a legend. Her hospitality is unmatched.", Date: "2023-05-10"},
				{Author: "Trail Mix", Rating: 5, Comment: "Amazing stay! The chili is real.", Date: "2023-06-02"},
			},
		},
		{
			ID: "ta-2", Name: "Cascade Dave", Location: "Cascade Locks, OR",
			Lat: 45.666, Lng: -121.892,
			Services:     "room,couch-floor,laundry,wifi,kitchen",
			Availability: upcomingDates(7, 10),
			Gallery:      picsumGallery(104, 105),
			About:        "I have a spare room and a comfy couch right near the Bridge of the Gods. Happy to help hikers rest up before tackling Washington. I work from home, so I'm usually around.",
			Badges:       "Bridge of the Gods Guardian",
			Verified:     true, LastActivity: "Online now", ResponseRate: 100,
			Instagram:    "cascadedave",
			Reviews: []models.Review{
				{Author: "Pacer", Rating: 5, Comment: "Dave is awesome. Super clean place and a great guy to talk to.", Date: "2023-08-15"},
			},
		},
		{
			ID: "ta-3", Name: "Scout & Frodo", Location: "San Diego, CA",
			Lat: 32.7157, Lng: -117.1611,
			Services: "room,kitchen,packages,rides",
			Gallery:  picsumGallery(106, 107, 108),
			About:    "We provide a comprehensive kickoff for PCT hikers starting their journey. We can host a large number of hikers. Please contact us well in advance!",
			Badges:   "PCT Kickoff Hosts",
			Verified: true, LastActivity: "1 day ago", ResponseRate: 80, Hiking: true,
			Reviews: []models.Review{
				{Author: "Every Hiker Ever", Rating: 5, Comment: "The best way to start the PCT. They have everything figured out.", Date: "2023-04-20"},
				{Author: "Nemo", Rating: 5, Comment: "Incredibly organized and welcoming.", Date: "2023-04-22"},
			},
		},
		{
			ID: "ta-4", Name: "AT Annie", Location: "Damascus, VA",
			Lat: 36.634, Lng: -81.785,
			Services:         "camping,bathroom,wifi,laundry",
			Availability:     upcomingDates(1, 30),
			Gallery:          picsumGallery(109),
			DonationExpected: true,
			About:            "Got a big backyard perfect for tents, right in the heart of Trail Town USA. Come relax during Trail Days or any time you're passing through. I can also do shuttles to the trailhead.",
			Badges:           "Trail Days Local",
			Verified:         false, LastActivity: "3 days ago", ResponseRate: 70,
			Reviews: []models.Review{
				{Author: "Mudfoot", Rating: 4, Comment: "Great spot to camp, and Annie is super friendly.", Date: "2023-05-14"},
			},
		},
	}
}

func generatedAngel(n int) models.TrailAngel {
	services := make([]string, 0, 4)
	for _, svc := range AllServiceIDs {
		if gofakeit.Bool() {
			services = append(services, svc)
		}
	}
	if len(services) == 0 {
		services = append(services, "camping")
	}
	return models.TrailAngel{
		ID:               fmt.Sprintf("ta-%d", n),
		Name:             fmt.Sprintf("%s %s", gofakeit.Adjective(), gofakeit.FirstName()),
		Location:         fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Lat:              gofakeit.Float64Range(32.0, 49.0),
		Lng:              gofakeit.Float64Range(-124.0, -70.0),
		Services:         strings.Join(services, ","),
		Availability:     upcomingDates(gofakeit.Number(1, 7), gofakeit.Number(0, 10)),
		Gallery:          picsumGallery(gofakeit.Number(100, 999)),
		DonationExpected: gofakeit.Bool(),
		About:            gofakeit.Sentence(12),
		Verified:         gofakeit.Bool(),
		LastActivity:     fmt.Sprintf("%d days ago", gofakeit.Number(1, 14)),
		ResponseRate:     gofakeit.Number(40, 100),
		Hiking:           gofakeit.Bool(),
	}
}
