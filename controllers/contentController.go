package controllers

import (
	"net/http"

	"github.com/doug-martin/goqu/v9/exp"
	"github.com/gin-gonic/gin"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

// contentType is admin-managed content that is switched on and off rather
// than moved through a status family.
type contentType struct {
	Table   string
	newList func() interface{}
}

var contentTypes = map[string]contentType{
	"devotionals": {Table: "devotionals", newList: func() interface{} { return &[]models.Devotional{} }},
	"scriptures":  {Table: "scriptures", newList: func() interface{} { return &[]models.Scripture{} }},
	"schedules":   {Table: "church_schedules", newList: func() interface{} { return &[]models.ChurchSchedule{} }},
	"resources":   {Table: "resources", newList: func() interface{} { return &[]models.Resource{} }},
}

func listContent(c *gin.Context, content contentType) {
	q := store.Query{Table: content.Table, Order: []exp.OrderedExpression{store.Newest()}}
	if value := c.Query("status"); value != "" {
		status := lifecycle.ParseStatus(value)
		if !lifecycle.IsActivation(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be active or inactive", "details": value})
			return
		}
		q.Where = []exp.Expression{store.StatusIs(string(status))}
	}

	list := content.newList()
	if err := recordStore().Select(c.Request.Context(), q, list); err != nil {
		respondError(c, "Failed to load "+content.Table, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

func activeByDefault(s *lifecycle.Status) {
	if *s == "" {
		*s = lifecycle.StatusActive
	}
}

// createContent binds form F and inserts the row build returns.
func createContent[F any](c *gin.Context, table string, build func(F, *int) interface{}) {
	var form F
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form", "details": err.Error()})
		return
	}

	actor := currentProfile(c).ID
	id, err := recordStore().Insert(c.Request.Context(), table, build(form, &actor))
	if err != nil {
		respondError(c, "Failed to create record", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Created", "id": id})
}

// updateContent binds form F and writes every form field. Status is only
// part of the form for activation content; everything else changes status
// through ChangeStatus.
func updateContent[F any](c *gin.Context, table string, prepare func(*F)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var form F
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form", "details": err.Error()})
		return
	}
	if prepare != nil {
		prepare(&form)
	}

	if err := recordStore().Update(c.Request.Context(), table, id, form); err != nil {
		respondError(c, "Failed to update record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated", "id": id})
}

func CreateAnnouncement(c *gin.Context) {
	createContent(c, "announcements", func(form models.AnnouncementForm, actor *int) interface{} {
		return models.Announcement{AnnouncementForm: form, Status: lifecycle.StatusDraft, Created_By: actor}
	})
}

func UpdateAnnouncement(c *gin.Context) {
	updateContent[models.AnnouncementForm](c, "announcements", nil)
}

func CreateEvent(c *gin.Context) {
	createContent(c, "events", func(form models.EventForm, actor *int) interface{} {
		return models.Event{EventForm: form, Status: lifecycle.StatusDraft, Created_By: actor}
	})
}

func UpdateEvent(c *gin.Context) {
	updateContent[models.EventForm](c, "events", nil)
}

func CreateFundraisingCampaign(c *gin.Context) {
	createContent(c, "fundraising_campaigns", func(form models.FundraisingForm, actor *int) interface{} {
		return models.FundraisingCampaign{FundraisingForm: form, Status: lifecycle.StatusDraft, Created_By: actor}
	})
}

func UpdateFundraisingCampaign(c *gin.Context) {
	updateContent[models.FundraisingForm](c, "fundraising_campaigns", nil)
}

func CreateLiveStream(c *gin.Context) {
	createContent(c, "live_streams", func(form models.LiveStreamForm, _ *int) interface{} {
		return models.LiveStream{LiveStreamForm: form, Status: lifecycle.StatusScheduled}
	})
}

func UpdateLiveStream(c *gin.Context) {
	updateContent[models.LiveStreamForm](c, "live_streams", nil)
}

func CreateDevotional(c *gin.Context) {
	createContent(c, "devotionals", func(form models.DevotionalForm, actor *int) interface{} {
		activeByDefault(&form.Status)
		return models.Devotional{DevotionalForm: form, Created_By: actor}
	})
}

func UpdateDevotional(c *gin.Context) {
	updateContent(c, "devotionals", func(form *models.DevotionalForm) { activeByDefault(&form.Status) })
}

func CreateScripture(c *gin.Context) {
	createContent(c, "scriptures", func(form models.ScriptureForm, actor *int) interface{} {
		activeByDefault(&form.Status)
		return models.Scripture{ScriptureForm: form, Created_By: actor}
	})
}

func UpdateScripture(c *gin.Context) {
	updateContent(c, "scriptures", func(form *models.ScriptureForm) { activeByDefault(&form.Status) })
}

func CreateSchedule(c *gin.Context) {
	createContent(c, "church_schedules", func(form models.ScheduleForm, _ *int) interface{} {
		activeByDefault(&form.Status)
		if form.Meta_Tags == nil {
			form.Meta_Tags = []string{}
		}
		return models.ChurchSchedule{ScheduleForm: form}
	})
}

func UpdateSchedule(c *gin.Context) {
	updateContent(c, "church_schedules", func(form *models.ScheduleForm) {
		activeByDefault(&form.Status)
		if form.Meta_Tags == nil {
			form.Meta_Tags = []string{}
		}
	})
}

func CreateResource(c *gin.Context) {
	createContent(c, "resources", func(form models.ResourceForm, _ *int) interface{} {
		activeByDefault(&form.Status)
		return models.Resource{ResourceForm: form}
	})
}

func UpdateResource(c *gin.Context) {
	updateContent(c, "resources", func(form *models.ResourceForm) { activeByDefault(&form.Status) })
}
