package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/metrics"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/moderation"
	"github.com/GraceHarbor/services"
)

func GetOverview(c *gin.Context) {
	overview, err := aggregator().Overview(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load dashboard overview", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// refreshQueue re-reads the caller's queue for e. When the request carries
// the named query parameter the filter is switched first.
func refreshQueue(c *gin.Context, e moderation.Entity, param string) (*moderation.View, interface{}, error) {
	view := boardFor(currentProfile(c).ID).View(e)
	if value, ok := c.GetQuery(param); ok {
		items, err := view.SetFilter(c.Request.Context(), recordStore(), lifecycle.ParseStatus(value))
		return view, items, err
	}
	items, err := view.Refresh(c.Request.Context(), recordStore())
	return view, items, err
}

// GetQueue lists one entity for the dashboard, filtered by ?status=. The
// filter is remembered per staff member and per entity.
func GetQueue(c *gin.Context) {
	name := c.Param("entity")
	e, ok := moderation.Lookup(name)
	if !ok {
		if content, isContent := contentTypes[name]; isContent {
			listContent(c, content)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown dashboard section"})
		return
	}

	view, items, err := refreshQueue(c, e, "status")
	if err != nil {
		respondError(c, "Failed to load "+e.Name, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity":   e.Name,
		"filter":   view.Filter(),
		"statuses": e.Family.Vocabulary(),
		"items":    items,
	})
}

// ChangeStatus applies a status transition and answers with the re-read
// queue for the caller's filter, so a record that left the filter is gone.
func ChangeStatus(c *gin.Context) {
	name := c.Param("entity")
	e, ok := moderation.Lookup(name)
	if !ok {
		if _, isContent := contentTypes[name]; isContent {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status of " + name + " is set through its edit form"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown dashboard section"})
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body models.StatusChange
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status change", "details": err.Error()})
		return
	}
	requested := lifecycle.ParseStatus(body.Status)
	if !e.Family.Contains(requested) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status for " + e.Name, "details": string(requested)})
		return
	}

	ctx := c.Request.Context()
	s := recordStore()
	actor := currentProfile(c)

	current, err := moderation.CurrentStatus(ctx, s, e, id)
	if err != nil {
		respondError(c, "Failed to load "+e.Name+" record", err)
		return
	}

	next, err := moderation.NewTransitioner(s, metrics.Lifecycle()).Transition(ctx, e, moderation.TransitionRequest{
		ID:        id,
		Current:   current,
		Requested: requested,
		Actor:     actor.ID,
		Response:  body.Response,
	})
	if err != nil {
		respondError(c, "Failed to change status", err)
		return
	}

	if e.Name == "contact-submissions" && next == lifecycle.StatusCompleted {
		var submission models.ContactSubmission
		if found, err := s.Get(ctx, e.Table, id, &submission); err == nil && found {
			go services.NotifyContactResponded(submission)
		}
	}

	view, items, err := refreshQueue(c, e, "filter")
	if err != nil {
		respondError(c, "Status changed but the list could not be reloaded", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
		"id":      id,
		"status":  next,
		"filter":  view.Filter(),
		"items":   items,
	})
}

// DeleteRecord removes a record. It only runs with ?confirm=true.
func DeleteRecord(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deleting requires confirm=true"})
		return
	}

	name := c.Param("entity")
	table := ""
	if e, ok := moderation.Lookup(name); ok {
		table = e.Table
	} else if content, ok := contentTypes[name]; ok {
		table = content.Table
	} else {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown dashboard section"})
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := recordStore().Delete(c.Request.Context(), table, id); err != nil {
		respondError(c, "Failed to delete record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted", "id": id})
}
