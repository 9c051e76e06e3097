package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trailangels/models"
	"trailangels/services"
)

// GetProfileHandler - the current user's profile record
func GetProfileHandler(c *gin.Context) {
	session, userID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	profiles := services.NewProfileService()
	profile, err := profiles.Get(c.Request.Context(), userID, c.GetString("nickname"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"display": models.DisplayFromProfile(session.UserID, *profile),
	})
}

// UpdateProfileHandler - plain field assignment, no transition logic
func UpdateProfileHandler(c *gin.Context) {
	_, userID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var upd services.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	profiles := services.NewProfileService()
	profile, err := profiles.Update(c.Request.Context(), userID, c.GetString("nickname"), upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SetServicesHandler - replaces the offered-service list
func SetServicesHandler(c *gin.Context) {
	_, userID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req struct {
		Services []string `json:"services"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	profiles := services.NewProfileService()
	profile, err := profiles.SetServices(c.Request.Context(), userID, c.GetString("nickname"), req.Services)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SetAddressHandler - stores the address and re-geocodes the position
func SetAddressHandler(c *gin.Context) {
	_, userID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var addr services.AddressUpdate
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	profiles := services.NewProfileService()
	profile, err := profiles.SetAddress(c.Request.Context(), userID, c.GetString("nickname"), addr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SetContactHandler - contact form fields
func SetContactHandler(c *gin.Context) {
	_, userID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var contact services.ContactUpdate
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	profiles := services.NewProfileService()
	profile, err := profiles.SetContact(c.Request.Context(), userID, c.GetString("nickname"), contact)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
