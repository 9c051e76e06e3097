package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrailAngelJSONCarriesListFields(t *testing.T) {
	angel := TrailAngel{
		ID:           "ta-1",
		Name:         "Bighorn Betty",
		Services:     "rides,wifi",
		Availability: "2026-09-05,2026-09-06",
		Gallery:      "https://picsum.photos/seed/101/600/400",
	}

	data, err := json.Marshal(angel)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"services":["rides","wifi"]`)
	assert.Contains(t, string(data), `"availability":["2026-09-05","2026-09-06"]`)
	assert.Contains(t, string(data), `"gallery":["https://picsum.photos/seed/101/600/400"]`)
}

func TestTrailAngelJSONRoundTripKeepsServices(t *testing.T) {
	angel := TrailAngel{ID: "ta-1", Name: "Bighorn Betty", Services: "rides,kitchen,wifi"}

	data, err := json.Marshal(angel)
	assert.NoError(t, err)

	var back TrailAngel
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, angel.Services, back.Services)
	assert.True(t, back.OffersService("rides"))
	assert.True(t, back.OffersService("wifi"))
	assert.False(t, back.OffersService("camping"))
}

func TestTrailAngelJSONEmptyLists(t *testing.T) {
	data, err := json.Marshal(TrailAngel{ID: "ta-3", Name: "Scout & Frodo"})
	assert.NoError(t, err)

	var back TrailAngel
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.Empty(t, back.ServiceIDs())
	assert.Empty(t, back.AvailabilityDates())
	assert.Empty(t, back.GalleryURLs())
}
