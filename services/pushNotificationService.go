package services

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type fcmSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type PushNotificationService struct {
	fcmClient fcmSender
}

type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

var pushService *PushNotificationService

const pushTimeout = 10 * time.Second

func InitPushNotificationService(serviceAccountPath string) {
	pushService = &PushNotificationService{}

	var (
		app *firebase.App
		err error
	)
	if serviceAccountPath != "" {
		app, err = firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(serviceAccountPath))
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize Firebase app with service account")
			return
		}
		log.Info().Msg("Firebase initialized with service account file")
	} else {
		app, err = firebase.NewApp(context.Background(), nil)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize Firebase app with ADC")
			return
		}
		log.Info().Msg("Firebase initialized with Application Default Credentials")
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("failed to get Firebase messaging client")
		return
	}
	pushService.fcmClient = client

	log.Info().Msg("push notification service initialized with FCM")
}

func GetPushNotificationService() *PushNotificationService {
	return pushService
}

// SendToTopic sends a notification to every device subscribed to topic.
func (s *PushNotificationService) SendToTopic(ctx context.Context, topic string, payload NotificationPayload) error {
	if s == nil || s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	ctx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM topic message: %w", err)
	}

	log.Info().Str("topic", topic).Str("message_id", response).Msg("sent FCM topic notification")
	return nil
}
