package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// Publisher emits portfolio events to Kafka. Delivery to end users
// (Telegram, email, whatever) is handled by whichever consumer reads the
// topic; this service's responsibility ends at the broker.
type Publisher struct {
	writer *kafka.Writer
	topic  string
}

// NewPublisher creates a Kafka publisher
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Publisher{
		writer: writer,
		topic:  topic,
	}
}

// PublishTransactionRecorded publishes a recorded trade event
func (p *Publisher) PublishTransactionRecorded(ctx context.Context, t *models.Transaction) error {
	event := models.TransactionEvent{
		EventType:   models.EventTransactionRecorded,
		UserID:      t.UserID,
		Transaction: t,
		Timestamp:   time.Now(),
	}
	return p.publish(ctx, t.UserID, event)
}

// PublishDailyReport publishes a rendered daily report for one user
func (p *Publisher) PublishDailyReport(ctx context.Context, userID int64, text string, chart []byte) error {
	event := models.ReportEvent{
		EventType: models.EventDailyReport,
		UserID:    userID,
		Text:      text,
		Chart:     chart,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, userID, event)
}

// PublishWeeklyReport publishes a rendered weekly report for one user
func (p *Publisher) PublishWeeklyReport(ctx context.Context, userID int64, text string, chart []byte) error {
	event := models.ReportEvent{
		EventType: models.EventWeeklyReport,
		UserID:    userID,
		Text:      text,
		Chart:     chart,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, userID, event)
}

// PublishPriceAlert publishes a fired price reminder
func (p *Publisher) PublishPriceAlert(ctx context.Context, r *models.Reminder, currentPrice decimal.Decimal) error {
	event := models.PriceAlertEvent{
		EventType:    models.EventPriceAlert,
		UserID:       r.UserID,
		Coin:         r.Coin,
		TargetPrice:  r.TargetPrice,
		CurrentPrice: currentPrice,
		Timestamp:    time.Now(),
	}
	return p.publish(ctx, r.UserID, event)
}

func (p *Publisher) publish(ctx context.Context, userID int64, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(userID, 10)),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka publisher
func (p *Publisher) Close() error {
	return p.writer.Close()
}
