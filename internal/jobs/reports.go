package jobs

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cryptofolio/portfolio-service/internal/models"
	"github.com/cryptofolio/portfolio-service/internal/report"
)

// UserDirectory lists users and their report preferences.
type UserDirectory interface {
	GetAllUserIDs() ([]int64, error)
	GetNotificationSettings(userID int64) (*models.NotificationSettings, error)
}

// Valuator computes portfolio valuations.
type Valuator interface {
	Valuate(ctx context.Context, userID int64) (*models.PortfolioValuation, error)
}

// ChartRenderer rasterizes chart series.
type ChartRenderer interface {
	RenderPie(series report.ChartSeries) ([]byte, error)
}

// ReportPublisher delivers rendered reports downstream.
type ReportPublisher interface {
	PublishDailyReport(ctx context.Context, userID int64, text string, chart []byte) error
	PublishWeeklyReport(ctx context.Context, userID int64, text string, chart []byte) error
}

// ReportJob broadcasts a portfolio report to every subscribed user. Users
// are processed one at a time; a failure for one user is logged and does
// not stop the run. Users with empty valuations get no report.
type ReportJob struct {
	users     UserDirectory
	valuator  Valuator
	charts    ChartRenderer
	publisher ReportPublisher
	weekly    bool
	log       zerolog.Logger
}

// NewDailyReportJob creates the daily report broadcast job
func NewDailyReportJob(users UserDirectory, valuator Valuator, charts ChartRenderer, publisher ReportPublisher, log zerolog.Logger) *ReportJob {
	return &ReportJob{
		users:     users,
		valuator:  valuator,
		charts:    charts,
		publisher: publisher,
		weekly:    false,
		log:       log.With().Str("job", "daily_report").Logger(),
	}
}

// NewWeeklyReportJob creates the weekly report broadcast job
func NewWeeklyReportJob(users UserDirectory, valuator Valuator, charts ChartRenderer, publisher ReportPublisher, log zerolog.Logger) *ReportJob {
	return &ReportJob{
		users:     users,
		valuator:  valuator,
		charts:    charts,
		publisher: publisher,
		weekly:    true,
		log:       log.With().Str("job", "weekly_report").Logger(),
	}
}

// Name implements scheduler.Job
func (j *ReportJob) Name() string {
	if j.weekly {
		return "weekly_report"
	}
	return "daily_report"
}

// Run implements scheduler.Job
func (j *ReportJob) Run() error {
	ctx := context.Background()

	userIDs, err := j.users.GetAllUserIDs()
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		if err := j.sendReport(ctx, userID); err != nil {
			j.log.Error().Err(err).Int64("user", userID).Msg("report failed")
		}
	}
	return nil
}

func (j *ReportJob) sendReport(ctx context.Context, userID int64) error {
	settings, err := j.users.GetNotificationSettings(userID)
	if err != nil {
		return err
	}
	if j.weekly && !settings.WeeklyReport {
		return nil
	}
	if !j.weekly && !settings.DailyReport {
		return nil
	}

	valuation, err := j.valuator.Valuate(ctx, userID)
	if err != nil {
		return err
	}
	if len(valuation.Assets) == 0 {
		return nil
	}

	var text string
	if j.weekly {
		text = report.FormatWeekly(report.Weekly(valuation))
	} else {
		text = report.FormatDaily(report.Daily(valuation))
	}

	chart, err := j.charts.RenderPie(report.ChartData(valuation))
	if err != nil {
		j.log.Warn().Err(err).Int64("user", userID).Msg("chart rendering failed, sending text only")
		chart = nil
	}

	if j.weekly {
		return j.publisher.PublishWeeklyReport(ctx, userID, text, chart)
	}
	return j.publisher.PublishDailyReport(ctx, userID, text, chart)
}
