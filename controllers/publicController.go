package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GraceHarbor/aggregation"
	"github.com/GraceHarbor/services"
)

func aggregator() *aggregation.Aggregator {
	return aggregation.New(recordStore())
}

func GetBanner(c *gin.Context) {
	banner, err := aggregator().Banner(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load banner", err)
		return
	}
	respondSingleton(c, banner)
}

func GetAnnouncements(c *gin.Context) {
	announcements, err := aggregator().Announcements(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load announcements", err)
		return
	}
	c.JSON(http.StatusOK, announcements)
}

func GetEvents(c *gin.Context) {
	tiers, err := aggregator().Events(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load events", err)
		return
	}
	c.JSON(http.StatusOK, tiers)
}

func GetCurrentScripture(c *gin.Context) {
	scripture, err := aggregator().CurrentScripture(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load scripture of the week", err)
		return
	}
	respondSingleton(c, scripture)
}

func GetCurrentDevotional(c *gin.Context) {
	devotional, err := aggregator().CurrentDevotional(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load devotional of the day", err)
		return
	}
	respondSingleton(c, devotional)
}

func GetDevotionals(c *gin.Context) {
	devotionals, err := aggregator().Devotionals(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load devotionals", err)
		return
	}
	c.JSON(http.StatusOK, devotionals)
}

func GetSchedules(c *gin.Context) {
	schedules, err := aggregator().ActiveSchedules(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load church schedule", err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func GetFundraising(c *gin.Context) {
	campaigns, err := aggregator().Fundraising(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load fundraising campaigns", err)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

func GetResources(c *gin.Context) {
	resources, err := aggregator().Resources(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load resources", err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

// GetLiveStreamStatus serves the poller's snapshot, falling back to a direct
// read before the first poll has completed.
func GetLiveStreamStatus(c *gin.Context) {
	if svc := services.GetLiveStreamService(); svc != nil {
		if status, ok := svc.Status(time.Now().UTC()); ok {
			c.JSON(http.StatusOK, status)
			return
		}
	}

	status, err := aggregator().LiveStream(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load live stream status", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
