// Package eventbridge publishes bookmark lifecycle events to an
// EventBridge bus for downstream consumers.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"markbase-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const eventSource = "markbase.bookmarks"

// EventBridgePublisher implements ports.EventPublisher over an
// EventBridge bus.
type EventBridgePublisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewEventBridgePublisher creates a new publisher for the given bus.
func NewEventBridgePublisher(client *eventbridge.Client, busName string, logger *zap.Logger) *EventBridgePublisher {
	return &EventBridgePublisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish puts one lifecycle event on the bus. The event type becomes the
// DetailType and the whole event the JSON detail.
func (p *EventBridgePublisher) Publish(ctx context.Context, event ports.BookmarkEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event detail: %w", err)
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(event.Type),
				Detail:       aws.String(string(detail)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to put event: %w", err)
	}

	if result.FailedEntryCount > 0 {
		for _, entry := range result.Entries {
			if entry.ErrorCode != nil {
				return fmt.Errorf("event entry rejected: %s: %s",
					aws.ToString(entry.ErrorCode), aws.ToString(entry.ErrorMessage))
			}
		}
	}

	p.logger.Debug("Published bookmark event",
		zap.String("type", event.Type),
		zap.String("ownerID", event.OwnerID),
	)
	return nil
}
