package clients

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"kennelhub-session-svc/src/internal/config"
	"kennelhub-session-svc/src/internal/models"
)

// EventPublisher publishes session lifecycle events to RabbitMQ.
type EventPublisher struct {
	channel *amqp.Channel
	cfg     *config.RabbitMQConfig
}

// NewEventPublisher creates a new session event publisher. A nil channel
// disables publishing entirely.
func NewEventPublisher(cfg *config.Configuration, channel *amqp.Channel) *EventPublisher {
	return &EventPublisher{
		channel: channel,
		cfg:     &cfg.Queue.RabbitMQ,
	}
}

// PublishSessionEvent publishes a session lifecycle message.
func (p *EventPublisher) PublishSessionEvent(sessionID, action, loginMethod, detail string) error {
	if p.channel == nil {
		return nil
	}

	message := models.SessionEventMessage{
		SessionID:   sessionID,
		ServiceName: models.ServiceSessionBroker,
		Action:      action,
		LoginMethod: loginMethod,
		Detail:      detail,
		Timestamp:   time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal session event: %w", err)
	}

	err = p.channel.Publish(
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to publish session event")
		return fmt.Errorf("failed to publish session event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"action":      action,
		"exchange":    p.cfg.Exchange,
		"routing_key": p.cfg.RoutingKey,
	}).Debug("Session event published")

	return nil
}
