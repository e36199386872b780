package jobs

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

// ReminderStore is the reminder persistence surface the sweep needs.
type ReminderStore interface {
	GetAllActiveReminders() ([]*models.Reminder, error)
	MarkReminderNotified(id int) error
}

// PriceSource supplies current prices for reminder checks.
type PriceSource interface {
	GetPrice(ctx context.Context, coinID, currency string) *decimal.Decimal
}

// AlertPublisher delivers fired price alerts.
type AlertPublisher interface {
	PublishPriceAlert(ctx context.Context, r *models.Reminder, currentPrice decimal.Decimal) error
}

// ReminderJob sweeps active price reminders and fires the ones whose coin
// trades at or above the target price. Each reminder fires at most once.
type ReminderJob struct {
	store     ReminderStore
	prices    PriceSource
	publisher AlertPublisher
	log       zerolog.Logger
}

// NewReminderJob creates the reminder sweep job
func NewReminderJob(store ReminderStore, prices PriceSource, publisher AlertPublisher, log zerolog.Logger) *ReminderJob {
	return &ReminderJob{
		store:     store,
		prices:    prices,
		publisher: publisher,
		log:       log.With().Str("job", "reminder_sweep").Logger(),
	}
}

// Name implements scheduler.Job
func (j *ReminderJob) Name() string { return "reminder_sweep" }

// Run implements scheduler.Job
func (j *ReminderJob) Run() error {
	ctx := context.Background()

	reminders, err := j.store.GetAllActiveReminders()
	if err != nil {
		return err
	}

	for _, reminder := range reminders {
		price := j.prices.GetPrice(ctx, reminder.Coin, "usd")
		if price == nil {
			continue
		}
		if price.LessThan(reminder.TargetPrice) {
			continue
		}

		if err := j.publisher.PublishPriceAlert(ctx, reminder, *price); err != nil {
			j.log.Error().Err(err).Int("reminder", reminder.ID).Msg("alert publish failed")
			continue
		}
		if err := j.store.MarkReminderNotified(reminder.ID); err != nil {
			j.log.Error().Err(err).Int("reminder", reminder.ID).Msg("failed to mark reminder notified")
		}
	}
	return nil
}
