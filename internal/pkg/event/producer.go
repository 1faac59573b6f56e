package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeTripBooked    = "trip_booked"
	TypeTripCancelled = "trip_cancelled"
)

// TripEvent is published whenever a trip is booked or cancelled.
type TripEvent struct {
	Type           string    `json:"type"`
	ReservationID  string    `json:"reservation_id"`
	CustomerID     int       `json:"customer_id"`
	TripDate       string    `json:"trip_date"`
	FlightIDs      []string  `json:"flight_ids"`
	Cost           float64   `json:"cost"`
	CustomerMiles  int       `json:"customer_miles"`
	CustomerStatus string    `json:"customer_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer MessageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	return NewProducerWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	})
}

func NewProducerWithWriter(writer MessageWriter) *Producer {
	return &Producer{writer: writer}
}

// Publish keys the message by reservation id so events of one trip stay
// ordered within a partition.
func (p *Producer) Publish(ctx context.Context, evt TripEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.ReservationID),
		Value: data,
		Time:  evt.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	slog.DebugContext(ctx, "trip event published",
		slog.String("type", evt.Type),
		slog.String("reservation_id", evt.ReservationID))

	return nil
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}

	return p.writer.Close()
}

// NopPublisher drops every event. It stands in when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, TripEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
