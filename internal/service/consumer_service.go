package service

import (
	"context"
	"encoding/json"

	"menu-tree-be/internal/dto"
	"menu-tree-be/internal/pkg/logger"
	"menu-tree-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder ships menu events to a sink such as NATS JetStream or the websocket hub.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarders []EventForwarder
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	log logger.ILogger,
	forwarders ...EventForwarder,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarders: forwarders,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.MenuEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal menu event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		// Ack invalid messages to prevent infinite redelivery
		msg.Ack()
		return
	}

	cs.logger.Info("EVENTS", "Menu event received", map[string]interface{}{
		"type": payload.Type,
		"data": payload.Data,
	})

	event := events.BaseEvent{
		Type:       payload.Type,
		Data:       payload.Data,
		OccurredAt: payload.OccurredAt,
	}
	for _, forwarder := range cs.forwarders {
		// Delivery to sinks is best effort.
		if err := forwarder.Publish(ctx, event); err != nil {
			cs.logger.Warn("EVENTS", "Failed to forward menu event", map[string]interface{}{
				"type":  payload.Type,
				"error": err.Error(),
			})
		}
	}
	msg.Ack()
}
