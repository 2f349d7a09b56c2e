// Package display runs the kitchen display subscriber: a console client of
// the staff event stream that renders incoming orders and status changes as
// human-readable lines for the pass.
package display

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/messaging"
	"restaurant-orders/internal/models"
)

// envelope mirrors the published wire frame with the payload left raw so it
// can be decoded per event type.
type envelope struct {
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Subscriber consumes the staff display queue and prints events.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger

	shutdown chan os.Signal
	done     chan bool
}

// NewSubscriber creates a kitchen display subscriber.
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
		shutdown: make(chan os.Signal, 1),
		done:     make(chan bool, 1),
	}
}

// Start consumes staff events until the context ends or a shutdown signal
// arrives.
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("service_started", "Kitchen display subscriber started", requestID, nil)

	go func() {
		if err := s.consumer.StartConsuming(ctx, s.handleEvent); err != nil {
			s.logger.Error("consumer_failed", "Display consumer failed", requestID, err, nil)
		}
		s.done <- true
	}()

	select {
	case <-s.shutdown:
		s.logger.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		return s.gracefulShutdown(requestID)
	case <-s.done:
		return nil
	}
}

// handleEvent decodes one staff event and renders it.
func (s *Subscriber) handleEvent(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse display event", requestID, err, nil)
		return fmt.Errorf("failed to parse display event: %w", err)
	}

	s.logger.Debug("event_received", "Received staff event", requestID, map[string]interface{}{
		"event": env.Event,
	})

	switch env.Event {
	case models.EventNewOrder:
		var order models.Order
		if err := json.Unmarshal(env.Payload, &order); err != nil {
			return fmt.Errorf("failed to parse %s payload: %w", env.Event, err)
		}
		s.displayNewOrder(&env, &order)
	case models.EventOrderStatusUpdated:
		var order models.Order
		if err := json.Unmarshal(env.Payload, &order); err != nil {
			return fmt.Errorf("failed to parse %s payload: %w", env.Event, err)
		}
		fmt.Println(formatOrderStatus(env.Timestamp, &order))
	case models.EventItemStatusUpdated:
		var item models.ItemStatusStaffPayload
		if err := json.Unmarshal(env.Payload, &item); err != nil {
			return fmt.Errorf("failed to parse %s payload: %w", env.Event, err)
		}
		s.displayItemUpdate(&env, &item)
	case models.EventTableUpdated:
		var table models.Table
		if err := json.Unmarshal(env.Payload, &table); err != nil {
			return fmt.Errorf("failed to parse %s payload: %w", env.Event, err)
		}
		s.displayTableUpdate(&env, &table)
	default:
		s.logger.Debug("event_skipped", "Unknown event type, skipping", requestID, map[string]interface{}{
			"event": env.Event,
		})
	}

	return nil
}

// displayNewOrder prints the full ticket for a new order.
func (s *Subscriber) displayNewOrder(env *envelope, order *models.Order) {
	fmt.Println(formatNewOrder(env.Timestamp, order))

	s.logger.Info("order_displayed", "New order displayed", "", map[string]interface{}{
		"order_id": order.ID,
		"table_id": order.TableID,
		"items":    len(order.Items),
	})
}

// displayItemUpdate prints a single item transition. READY items get the
// pickup alert the pass watches for.
func (s *Subscriber) displayItemUpdate(env *envelope, item *models.ItemStatusStaffPayload) {
	fmt.Println(formatItemUpdate(env.Timestamp, item))
}

// displayTableUpdate prints table-level changes; call-staff requests are the
// interesting ones on the floor.
func (s *Subscriber) displayTableUpdate(env *envelope, table *models.Table) {
	fmt.Println(formatTableUpdate(env.Timestamp, table))
}

// formatNewOrder renders the ticket for a new order, one line per item.
func formatNewOrder(ts time.Time, order *models.Order) string {
	timestamp := ts.Format("15:04:05")

	out := fmt.Sprintf("🆕 [%s] New order #%d for table %d (%d items)",
		timestamp, order.ID, order.TableID, len(order.Items))
	for _, item := range order.Items {
		out += fmt.Sprintf("\n    %dx %s", item.Quantity, item.MenuName)
		if item.Note != "" {
			out += fmt.Sprintf(" (note: %s)", item.Note)
		}
	}
	return out
}

// formatOrderStatus renders a bulk order transition.
func formatOrderStatus(ts time.Time, order *models.Order) string {
	return fmt.Sprintf("📋 [%s] Order #%d (table %d) is now %s",
		ts.Format("15:04:05"), order.ID, order.TableID, order.Status)
}

// formatItemUpdate renders one dish transition.
func formatItemUpdate(ts time.Time, item *models.ItemStatusStaffPayload) string {
	timestamp := ts.Format("15:04:05")

	switch item.Status {
	case models.StatusReady:
		return fmt.Sprintf("✅ [%s] READY: %dx %s for %s (order #%d), pick up!",
			timestamp, item.Quantity, item.MenuName, item.TableName, item.OrderID)
	case models.StatusCancelled:
		return fmt.Sprintf("❌ [%s] CANCELLED: %dx %s for %s (order #%d)",
			timestamp, item.Quantity, item.MenuName, item.TableName, item.OrderID)
	default:
		return fmt.Sprintf("🍳 [%s] %s: %dx %s for %s (order #%d)",
			timestamp, item.Status, item.Quantity, item.MenuName, item.TableName, item.OrderID)
	}
}

// formatTableUpdate renders a table-level change.
func formatTableUpdate(ts time.Time, table *models.Table) string {
	timestamp := ts.Format("15:04:05")

	if table.IsCallingStaff {
		return fmt.Sprintf("🔔 [%s] Table %s is calling staff!", timestamp, table.Name)
	}
	return fmt.Sprintf("🪑 [%s] Table %s updated (available=%t, occupied=%t)",
		timestamp, table.Name, table.IsAvailable, table.IsOccupied)
}

func (s *Subscriber) gracefulShutdown(requestID string) error {
	s.logger.Info("graceful_shutdown", "Starting graceful shutdown", requestID, nil)

	if s.consumer != nil {
		s.consumer.Close()
	}

	s.logger.Info("graceful_shutdown", "Graceful shutdown completed", requestID, nil)
	return nil
}
