package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/metrics"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/moderation"
	"github.com/GraceHarbor/store"
)

func CreateTitheOffering(c *gin.Context) {
	var form models.TitheOfferingCreate
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection", "details": err.Error()})
		return
	}
	if form.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount cannot be negative"})
		return
	}

	collection := models.TitheOffering{
		TitheOfferingCreate: form,
		Status:              lifecycle.StatusPending,
		Created_By:          currentProfile(c).ID,
	}
	id, err := recordStore().Insert(c.Request.Context(), "tithe_offerings", collection)
	if err != nil {
		respondError(c, "Failed to record collection", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Collection recorded",
		"id":       id,
		"progress": lifecycle.NewVerificationProgress(nil),
	})
}

// VerifyTitheOffering records the caller's verification of a collection.
// Verifying twice is not an error; the collection status never changes here.
func VerifyTitheOffering(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	progress, recorded, err := moderation.NewVerifier(recordStore(), metrics.Lifecycle()).
		Verify(c.Request.Context(), id, currentProfile(c).ID)
	if store.IsForeignKeyViolation(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found", "details": err.Error()})
		return
	}
	if err != nil {
		respondError(c, "Failed to verify collection", err)
		return
	}

	message := "Your verification has been recorded."
	if !recorded {
		message = "You have already verified this collection."
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         message,
		"recorded":        recorded,
		"progress":        progress,
		"progressDisplay": progress.Display(),
		"thresholdMet":    progress.Reached(),
	})
}

// GetTitheCategories lists the active categories for the collection form.
func GetTitheCategories(c *gin.Context) {
	categories, err := moderation.ActiveCategories(c.Request.Context(), recordStore())
	if err != nil {
		respondError(c, "Failed to load categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
