package tickets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stadly/internal/booking"
	"stadly/internal/shared/config"
	"stadly/pkg/logger"

	"github.com/IBM/sarama"
)

// IssuedTicketMessage is the payload published for every ticket issued
// by a confirmed booking. Downstream consumers handle delivery email
// and gate access provisioning.
type IssuedTicketMessage struct {
	TicketID   string    `json:"ticket_id"`
	BookingID  string    `json:"booking_id"`
	EventID    string    `json:"event_id"`
	CustomerID string    `json:"customer_id"`
	SeatID     string    `json:"seat_id"`
	Serial     string    `json:"serial"`
	Price      float64   `json:"price"`
	IssuedAt   time.Time `json:"issued_at"`
}

// Producer publishes issued tickets to Kafka. It implements
// booking.TicketPublisher.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewProducer connects a synchronous Kafka producer. Messages for the
// same booking share a partition so consumers see a booking's tickets
// in order.
func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = cfg.ProducerRetryMax
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Timeout = cfg.ProducerTimeout
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    cfg.TicketTopic,
		logger:   logger.GetDefault(),
	}, nil
}

// PublishIssued sends one message per ticket. The first marshal or
// send failure aborts the batch; the caller only logs the error since
// tickets are already durable in Postgres.
func (p *Producer) PublishIssued(ctx context.Context, tickets []booking.Ticket) error {
	for i := range tickets {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := IssuedTicketMessage{
			TicketID:   tickets[i].ID.String(),
			BookingID:  tickets[i].BookingID.String(),
			EventID:    tickets[i].EventID.String(),
			CustomerID: tickets[i].CustomerID.String(),
			SeatID:     tickets[i].SeatID.String(),
			Serial:     tickets[i].Serial,
			Price:      tickets[i].Price,
			IssuedAt:   tickets[i].IssuedAt,
		}
		payload, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal ticket message: %w", err)
		}

		partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(msg.BookingID),
			Value: sarama.ByteEncoder(payload),
		})
		if err != nil {
			return fmt.Errorf("failed to publish ticket %s: %w", msg.Serial, err)
		}

		p.logger.DebugWithContext(ctx, "ticket published", map[string]interface{}{
			"serial":    msg.Serial,
			"partition": partition,
			"offset":    offset,
		})
	}
	return nil
}

// Close shuts down the underlying producer.
func (p *Producer) Close() error {
	return p.producer.Close()
}

// NoopPublisher satisfies booking.TicketPublisher when Kafka is
// disabled (local development, tests).
type NoopPublisher struct{}

func (NoopPublisher) PublishIssued(ctx context.Context, tickets []booking.Ticket) error {
	return nil
}
