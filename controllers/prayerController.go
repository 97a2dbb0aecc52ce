package controllers

import (
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GraceHarbor/aggregation"
	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

// CreatePrayer accepts a public prayer request. It waits in the moderation
// queue as pending until staff approve it.
func CreatePrayer(c *gin.Context) {
	var form models.PrayerCreate
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request", "details": err.Error()})
		return
	}

	prayer := models.Prayer{PrayerCreate: form, Status: lifecycle.StatusPending}
	id, err := recordStore().Insert(c.Request.Context(), "prayers", prayer)
	if err != nil {
		respondError(c, "Failed to submit prayer request", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Prayer request submitted. It will appear once reviewed.",
		"id":      id,
		"status":  lifecycle.StatusPending,
	})
}

func GetPrayerWall(c *gin.Context) {
	prayers, err := aggregator().PrayerWall(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load prayer wall", err)
		return
	}
	c.JSON(http.StatusOK, prayers)
}

func GetPrayerWallStats(c *gin.Context) {
	stats, err := aggregator().WallStats(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load prayer wall stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// PrayForPrayer records that the signed-in user prayed for a wall prayer.
// prayer_count goes up once per distinct (prayer, user) pair.
func PrayForPrayer(c *gin.Context) {
	userID := currentProfile(c).ID
	prayerID, ok := paramID(c, "prayer_id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	s := recordStore()

	var prayer models.Prayer
	found, err := s.Get(ctx, "prayers", prayerID, &prayer)
	if err != nil {
		respondError(c, "Failed to load prayer", err)
		return
	}
	if !found || !aggregation.OnWall(prayer) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer is not on the prayer wall"})
		return
	}

	existing, err := s.Count(ctx, store.Query{
		Table: "prayer_interactions",
		Where: []exp.Expression{
			goqu.C("prayer_id").Eq(prayerID),
			goqu.C("user_id").Eq(userID),
		},
	})
	if err != nil {
		respondError(c, "Failed to record prayer", err)
		return
	}
	if existing > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "You have already prayed for this request", "prayerCount": prayer.Prayer_Count, "counted": false})
		return
	}

	_, err = s.Insert(ctx, "prayer_interactions", models.PrayerInteraction{Prayer_ID: prayerID, User_ID: userID})
	if store.IsUniqueViolation(err) {
		c.JSON(http.StatusOK, gin.H{"message": "You have already prayed for this request", "prayerCount": prayer.Prayer_Count, "counted": false})
		return
	}
	if err != nil {
		respondError(c, "Failed to record prayer", err)
		return
	}

	err = s.Update(ctx, "prayers", prayerID, goqu.Record{"prayer_count": goqu.L(`"prayer_count" + 1`)})
	if err != nil {
		log.Error().Err(err).Int("prayer_id", prayerID).Msg("prayer interaction saved but count not incremented")
		respondError(c, "Failed to update prayer count", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer recorded", "prayerCount": prayer.Prayer_Count + 1, "counted": true})
}
