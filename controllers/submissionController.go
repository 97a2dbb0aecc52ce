package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/metrics"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/moderation"
	"github.com/GraceHarbor/services"
	"github.com/GraceHarbor/store"
)

// submit binds a public form, builds its row and stores it in table.
func submit[F any](c *gin.Context, table, what string, build func(F) interface{}) (int, bool) {
	var form F
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what, "details": err.Error()})
		return 0, false
	}

	id, err := recordStore().Insert(c.Request.Context(), table, build(form))
	if err != nil {
		respondError(c, "Failed to submit "+what, err)
		return 0, false
	}
	return id, true
}

func CreateConnectionCard(c *gin.Context) {
	id, ok := submit(c, "connection_cards", "connection card", func(form models.ConnectionCardCreate) interface{} {
		return models.ConnectionCard{ConnectionCardCreate: form, Status: lifecycle.StatusNew}
	})
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thank you for connecting with us!", "id": id})
}

func CreateContactSubmission(c *gin.Context) {
	id, ok := submit(c, "contact_submissions", "contact message", func(form models.ContactCreate) interface{} {
		return models.ContactSubmission{ContactCreate: form, Status: lifecycle.StatusNew}
	})
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent. We'll get back to you soon.", "id": id})
}

func CreateDonationRequest(c *gin.Context) {
	id, ok := submit(c, "donations", "donation request", func(form models.DonationCreate) interface{} {
		return models.Donation{DonationCreate: form, Current_Amount: decimal.Zero, Status: lifecycle.StatusPending}
	})
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Donation request submitted for review.", "id": id})
}

func CreateMeetingRequest(c *gin.Context) {
	id, ok := submit(c, "meetings", "meeting request", func(form models.MeetingCreate) interface{} {
		if form.Equipment_Needed == nil {
			form.Equipment_Needed = []string{}
		}
		return models.Meeting{MeetingCreate: form, Status: lifecycle.StatusPending}
	})
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meeting request submitted for review.", "id": id})
}

// SubscribeNewsletter adds an address to the newsletter. An address that is
// already subscribed is not an error.
func SubscribeNewsletter(c *gin.Context) {
	var form models.NewsletterSubscribe
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address", "details": err.Error()})
		return
	}
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	if form.Source == "" {
		form.Source = "website"
	}

	id, err := recordStore().Insert(c.Request.Context(), "newsletter_subscriptions", models.NewsletterSubscription{
		NewsletterSubscribe: form,
		Status:              lifecycle.StatusActive,
	})
	if store.IsUniqueViolation(err) {
		c.JSON(http.StatusOK, gin.H{"message": "You're already subscribed to our newsletter.", "alreadySubscribed": true})
		return
	}
	if err != nil {
		respondError(c, "Failed to subscribe", err)
		return
	}

	go services.NotifyNewsletterWelcome(form.Email)

	c.JSON(http.StatusCreated, gin.H{"message": "Thanks for subscribing!", "id": id, "alreadySubscribed": false})
}

type unsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UnsubscribeNewsletter moves an active subscription to unsubscribed.
func UnsubscribeNewsletter(c *gin.Context) {
	var req unsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	s := recordStore()

	var subs []models.NewsletterSubscription
	err := s.Select(ctx, store.Query{
		Table: "newsletter_subscriptions",
		Where: []exp.Expression{goqu.C("email").Eq(strings.ToLower(strings.TrimSpace(req.Email)))},
		Limit: 1,
	}, &subs)
	if err != nil {
		respondError(c, "Failed to unsubscribe", err)
		return
	}
	if len(subs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}
	sub := subs[0]
	if sub.Status == lifecycle.StatusUnsubscribed {
		c.JSON(http.StatusOK, gin.H{"message": "You're already unsubscribed."})
		return
	}

	entity, _ := moderation.Lookup("newsletter")
	_, err = moderation.NewTransitioner(s, metrics.Lifecycle()).Transition(ctx, entity, moderation.TransitionRequest{
		ID:        sub.ID,
		Current:   sub.Status,
		Requested: lifecycle.StatusUnsubscribed,
	})
	var illegal *lifecycle.IllegalTransitionError
	if errors.As(err, &illegal) {
		c.JSON(http.StatusOK, gin.H{"message": "You're already unsubscribed."})
		return
	}
	if err != nil {
		respondError(c, "Failed to unsubscribe", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You have been unsubscribed."})
}
