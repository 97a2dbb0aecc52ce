package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog/log"

	"github.com/GraceHarbor/initializers"
	"github.com/GraceHarbor/models"
)

const (
	NotificationTypeStreamLive      = "STREAM_LIVE"
	NotificationTypeContactResponse = "CONTACT_RESPONSE"
	NotificationTypeNewsletter      = "NEWSLETTER_WELCOME"
)

const streamLiveWindowMinutes = 30

// shouldSendDebounced reports whether a notification for (notifType, entityID)
// is outside its debounce window, recording the attempt when it is.
// Uses an atomic upsert so concurrent triggers send at most once. Records older
// than 24h are cleaned up lazily.
func shouldSendDebounced(ctx context.Context, notifType string, entityID int, windowMinutes int) bool {
	_, cleanupErr := initializers.DB.Delete("notification_debounce").
		Where(goqu.L("last_triggered_at < NOW() - INTERVAL '24 hours'")).
		Executor().ExecContext(ctx)
	if cleanupErr != nil {
		log.Error().Err(cleanupErr).Msg("cleaning up old debounce records")
	}

	query := `
		INSERT INTO notification_debounce (notification_type, entity_id, last_triggered_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (notification_type, entity_id)
		DO UPDATE SET last_triggered_at = NOW()
		WHERE notification_debounce.last_triggered_at < NOW() - ($3 || ' minutes')::INTERVAL
		RETURNING debounce_id
	`

	var debounceID int
	err := initializers.DB.QueryRowContext(ctx, query, notifType, entityID, strconv.Itoa(windowMinutes)).Scan(&debounceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false
		}
		log.Error().Err(err).Str("type", notifType).Int("entity_id", entityID).Msg("debounce check failed")
		return true
	}

	return true
}

// NotifyStreamLive pushes a "we are live" message to the live stream topic,
// at most once per stream per debounce window.
func NotifyStreamLive(ctx context.Context, topic string, stream models.LiveStream) {
	push := GetPushNotificationService()
	if push == nil {
		return
	}
	if !shouldSendDebounced(ctx, NotificationTypeStreamLive, stream.ID, streamLiveWindowMinutes) {
		log.Debug().Int("stream_id", stream.ID).Msg("stream live notification debounced")
		return
	}

	payload := NotificationPayload{
		Title: "We're live!",
		Body:  stream.Title,
		Data: map[string]string{
			"type":     NotificationTypeStreamLive,
			"streamId": strconv.Itoa(stream.ID),
			"platform": stream.Platform,
		},
	}
	if err := push.SendToTopic(ctx, topic, payload); err != nil {
		log.Error().Err(err).Int("stream_id", stream.ID).Msg("failed to send stream live notification")
	}
}

// NotifyContactResponded emails the staff response to a completed contact submission.
func NotifyContactResponded(submission models.ContactSubmission) {
	email := GetEmailService()
	if email == nil || submission.Response == nil {
		return
	}
	if err := email.SendContactResponse(submission.Email, submission.Name, submission.Subject, *submission.Response); err != nil {
		log.Error().Err(err).Str("type", NotificationTypeContactResponse).Int("submission_id", submission.ID).Msg("failed to email contact response")
		return
	}
	log.Info().Str("type", NotificationTypeContactResponse).Int("submission_id", submission.ID).Msg("contact response emailed")
}

// NotifyNewsletterWelcome sends the welcome email to a new subscriber.
func NotifyNewsletterWelcome(address string) {
	email := GetEmailService()
	if email == nil {
		return
	}
	if err := email.SendNewsletterWelcome(address); err != nil {
		log.Error().Err(err).Str("type", NotificationTypeNewsletter).Msg("failed to send newsletter welcome")
		return
	}
	log.Info().Str("type", NotificationTypeNewsletter).Msg("newsletter welcome sent")
}
