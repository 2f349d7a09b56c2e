// Package broadcast fans domain events out to the two client audiences:
// every staff/kitchen client, and the customers of one specific table.
// Delivery is best-effort and at-most-once; clients reconcile via polling,
// so an emit failure is logged and never fails the mutating operation.
package broadcast

import (
	"context"

	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/messaging"
)

// Port is the broadcast dependency the domain services receive at
// construction. Keeping it an interface lets tests capture emissions and
// keeps the services free of any ambient broker lookup.
type Port interface {
	// EmitToStaff delivers an event to every staff/kitchen client.
	EmitToStaff(ctx context.Context, event string, payload interface{})
	// EmitToTable delivers an event to the room of one table only.
	EmitToTable(ctx context.Context, tableID int64, event string, payload interface{})
}

// AMQPBroadcaster implements Port on top of the RabbitMQ publisher:
// staff audience is a fanout exchange, table rooms are topic routing keys.
type AMQPBroadcaster struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewAMQPBroadcaster creates a broadcaster over an established publisher.
func NewAMQPBroadcaster(publisher *messaging.Publisher, log *logger.Logger) *AMQPBroadcaster {
	return &AMQPBroadcaster{
		publisher: publisher,
		logger:    log,
	}
}

// EmitToStaff publishes to the staff fanout exchange.
func (b *AMQPBroadcaster) EmitToStaff(ctx context.Context, event string, payload interface{}) {
	if err := b.publisher.PublishStaff(ctx, event, payload); err != nil {
		b.logger.Error("broadcast_failed", "Failed to broadcast to staff channel", "", err, map[string]interface{}{
			"event": event,
		})
	}
}

// EmitToTable publishes to the table's room on the topic exchange.
func (b *AMQPBroadcaster) EmitToTable(ctx context.Context, tableID int64, event string, payload interface{}) {
	if err := b.publisher.PublishTable(ctx, tableID, event, payload); err != nil {
		b.logger.Error("broadcast_failed", "Failed to broadcast to table room", "", err, map[string]interface{}{
			"event":    event,
			"table_id": tableID,
		})
	}
}
