package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trailangels/models"
	"trailangels/services"
)

// ListAngelsHandler - the filterable host directory
func ListAngelsHandler(c *gin.Context) {
	filter := services.FilterState{
		Name:       c.Query("name"),
		Location:   c.Query("location"),
		NoDonation: c.Query("no_donation") == "true",
	}
	if svcParam := c.Query("services"); svcParam != "" {
		filter.Services = strings.Split(svcParam, ",")
	}

	angels := services.NewAngelService()
	list, err := angels.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trail angels"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"angels": list, "count": len(list)})
}

// GetAngelHandler - one host's full profile in the common display shape
func GetAngelHandler(c *gin.Context) {
	angels := services.NewAngelService()
	angel, err := angels.Get(c.Request.Context(), c.Param("angel_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trail angel not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"angel":   angel,
		"display": models.DisplayFromAngel(*angel),
	})
}

// GetMarkersHandler - the markers the map surface consumes
func GetMarkersHandler(c *gin.Context) {
	angels := services.NewAngelService()
	markers, err := angels.Markers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load markers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"markers": markers})
}
