package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"trailangels/db"
)

func setupProfileTest(t *testing.T) *ProfileService {
	if err := db.ConnectTestDB(); err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	return NewProfileService()
}

func TestGetCreatesDefaultProfile(t *testing.T) {
	ps := setupProfileTest(t)

	profile, err := ps.Get(context.Background(), 101, "wired")
	assert.NoError(t, err)
	assert.Equal(t, "wired", profile.TrailName)
	assert.True(t, profile.Hiking)

	// Second read returns the same record, not a new default.
	again, err := ps.Get(context.Background(), 101, "ignored")
	assert.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)
}

func TestUpdateAssignsOnlyProvidedFields(t *testing.T) {
	ps := setupProfileTest(t)

	trailName := "Wired"
	about := "Mexico to Canada, slowly."
	updated, err := ps.Update(context.Background(), 102, "wired2", ProfileUpdate{
		TrailName: &trailName,
		About:     &about,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Wired", updated.TrailName)
	assert.Equal(t, "Mexico to Canada, slowly.", updated.About)
	// Untouched fields keep their defaults.
	assert.Equal(t, "hiking", updated.Status)
}

func TestSetServicesReplacesList(t *testing.T) {
	ps := setupProfileTest(t)

	profile, err := ps.SetServices(context.Background(), 103, "wired3", []string{"camping", "wifi"})
	assert.NoError(t, err)
	assert.Equal(t, "camping,wifi", profile.Services)

	profile, err = ps.SetServices(context.Background(), 103, "wired3", []string{"rides"})
	assert.NoError(t, err)
	assert.Equal(t, "rides", profile.Services)
}

func TestSetAddressGeocodesKnownCity(t *testing.T) {
	ps := setupProfileTest(t)

	profile, err := ps.SetAddress(context.Background(), 104, "wired4", AddressUpdate{
		Line1:   "123 Trail Ln",
		City:    "Wrightwood",
		State:   "CA",
		Country: "USA",
	})
	assert.NoError(t, err)
	assert.InDelta(t, 34.363, profile.Lat, 0.001)
	assert.InDelta(t, -117.633, profile.Lng, 0.001)
}

func TestSetAddressKeepsPositionForUnknownCity(t *testing.T) {
	ps := setupProfileTest(t)

	before, err := ps.SetAddress(context.Background(), 105, "wired5", AddressUpdate{
		City: "Wrightwood", State: "CA", Country: "USA",
	})
	assert.NoError(t, err)

	after, err := ps.SetAddress(context.Background(), 105, "wired5", AddressUpdate{
		City: "Nowhereville", State: "ZZ", Country: "USA",
	})
	assert.NoError(t, err)
	assert.Equal(t, before.Lat, after.Lat)
	assert.Equal(t, before.Lng, after.Lng)
}
