package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/assetverse/assetverse-backend/config"
	"github.com/assetverse/assetverse-backend/utils"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Service interface {
	HandleEvent(ctx context.Context, event Event) error
	ListForUser(ctx context.Context, userEmail string, limit int) ([]InAppNotification, error)
	MarkAsRead(ctx context.Context, id uint, userEmail string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// HandleEvent materializes one lifecycle event as an in-app notification.
// Events without a target user (e.g. company-wide notices fan out per user
// upstream) are dropped.
func (s *service) HandleEvent(ctx context.Context, event Event) error {
	if event.UserEmail == "" {
		return nil
	}

	var metadata []byte
	if event.Metadata != nil {
		metadata, _ = json.Marshal(event.Metadata)
	}

	return s.repo.Create(ctx, &InAppNotification{
		UserEmail: event.UserEmail,
		Title:     event.Title,
		Message:   event.Message,
		Category:  event.Category,
		Metadata:  metadata,
	})
}

func (s *service) ListForUser(ctx context.Context, userEmail string, limit int) ([]InAppNotification, error) {
	return s.repo.ListByUser(ctx, userEmail, limit)
}

func (s *service) MarkAsRead(ctx context.Context, id uint, userEmail string) error {
	affected, err := s.repo.MarkAsRead(ctx, id, userEmail)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// StartKafkaConsumer runs the event-stream consumer in the background. Without
// Kafka configured it is a no-op; lifecycle operations do not depend on it.
func StartKafkaConsumer(cfg *config.Config, svc Service) {
	reader := utils.NewEventReader(cfg, "notification-consumer")
	if reader == nil {
		log.Println("ℹ️ Kafka not configured, notification consumer disabled")
		return
	}

	go func() {
		defer reader.Close()
		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("⚠️ Kafka consumer stopped: %v", err)
				return
			}

			var event Event
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("⚠️ Skipping malformed event: %v", err)
				continue
			}

			if err := svc.HandleEvent(context.Background(), event); err != nil {
				log.Printf("⚠️ Failed to store notification (type=%s): %v", event.Type, err)
			}
		}
	}()

	log.Println("✅ Notification consumer started")
}
