package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"trailangels/db"
	"trailangels/models"
	"trailangels/services"
)

func setupAngelsRouter(t *testing.T) *gin.Engine {
	if err := db.ConnectTestDB(); err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := services.NewAngelService().SeedDemo(context.Background(), 0); err != nil {
		t.Fatalf("failed to seed directory: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/angels", ListAngelsHandler)
	r.GET("/api/v1/angels/markers", GetMarkersHandler)
	r.GET("/api/v1/angels/:angel_id", GetAngelHandler)
	return r
}

func TestListAngelsWithServiceFilter(t *testing.T) {
	r := setupAngelsRouter(t)

	w := doJSON(r, "GET", "/api/v1/angels?services=rides,wifi", nil)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Angels []models.TrailAngel `json:"angels"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Angels)
	for _, a := range resp.Angels {
		assert.True(t, a.OffersService("rides"))
		assert.True(t, a.OffersService("wifi"))
	}
}

func TestAngelDetailPayloadHasListFields(t *testing.T) {
	r := setupAngelsRouter(t)

	w := doJSON(r, "GET", "/api/v1/angels/ta-1", nil)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Angel models.TrailAngel `json:"angel"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"rides", "kitchen", "storage", "packages", "wifi"}, resp.Angel.ServiceIDs())
	assert.Len(t, resp.Angel.AvailabilityDates(), 3)
	assert.Len(t, resp.Angel.GalleryURLs(), 3)
}

func TestGetAngelReturnsTaggedDisplay(t *testing.T) {
	r := setupAngelsRouter(t)

	w := doJSON(r, "GET", "/api/v1/angels/ta-2", nil)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Display models.DisplayProfile `json:"display"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.KindHost, resp.Display.Kind)
	assert.Equal(t, "Cascade Dave", resp.Display.Name)

	w = doJSON(r, "GET", "/api/v1/angels/ta-999", nil)
	assert.Equal(t, 404, w.Code)
}

func TestMarkersEndpoint(t *testing.T) {
	r := setupAngelsRouter(t)

	w := doJSON(r, "GET", "/api/v1/angels/markers", nil)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Markers []models.MapMarker `json:"markers"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, len(resp.Markers), 4)
}
