package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trailangels/api/middleware"
	"trailangels/services"
)

// RadioGate is the moderation gate the radio handlers publish through. The
// server wires the HTTP client here; tests swap in fakes.
var RadioGate services.ModerationGate

// GetRadioFeedHandler - the public trail radio feed
func GetRadioFeedHandler(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	radio := services.NewRadioService(RadioGate)
	posts, err := radio.Feed(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// SubmitRadioPostHandler - submits a post through the moderation gate. The
// submitting control stays disabled client-side until this responds, so a
// pending submission can never be re-sent concurrently.
func SubmitRadioPostHandler(c *gin.Context) {
	session, _, ok := sessionFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	radio := services.NewRadioService(RadioGate)
	start := time.Now()
	post, err := radio.Publish(c.Request.Context(), services.RadioAuthor{
		ID:   session.UserID,
		Name: session.DisplayName,
	}, req.Body)
	middleware.ModerationDuration.WithLabelValues(outcomeLabel(err)).Observe(time.Since(start).Seconds())

	var rejection *services.RejectionError
	if errors.As(err, &rejection) {
		middleware.RadioPostsTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": rejection.Reason,
		})
		return
	}
	if err != nil {
		middleware.RadioPostsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	middleware.RadioPostsTotal.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message posted successfully!",
		"post":    post,
	})
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
