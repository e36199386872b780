package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptofolio/portfolio-service/internal/models"
	"github.com/cryptofolio/portfolio-service/internal/report"
)

type fakeDirectory struct {
	ids      []int64
	settings map[int64]*models.NotificationSettings
}

func (f *fakeDirectory) GetAllUserIDs() ([]int64, error) { return f.ids, nil }

func (f *fakeDirectory) GetNotificationSettings(userID int64) (*models.NotificationSettings, error) {
	if s, ok := f.settings[userID]; ok {
		return s, nil
	}
	return &models.NotificationSettings{UserID: userID, DailyReport: true, WeeklyReport: true}, nil
}

type fakeValuator struct {
	valuations map[int64]*models.PortfolioValuation
	errs       map[int64]error
}

func (f *fakeValuator) Valuate(_ context.Context, userID int64) (*models.PortfolioValuation, error) {
	if err, ok := f.errs[userID]; ok {
		return nil, err
	}
	if v, ok := f.valuations[userID]; ok {
		return v, nil
	}
	return &models.PortfolioValuation{}, nil
}

type fakeRenderer struct {
	fail bool
}

func (f *fakeRenderer) RenderPie(_ report.ChartSeries) ([]byte, error) {
	if f.fail {
		return nil, errors.New("render failed")
	}
	return []byte("png"), nil
}

type publishedReport struct {
	userID int64
	text   string
	chart  []byte
}

type fakePublisher struct {
	daily  []publishedReport
	weekly []publishedReport
}

func (f *fakePublisher) PublishDailyReport(_ context.Context, userID int64, text string, chart []byte) error {
	f.daily = append(f.daily, publishedReport{userID, text, chart})
	return nil
}

func (f *fakePublisher) PublishWeeklyReport(_ context.Context, userID int64, text string, chart []byte) error {
	f.weekly = append(f.weekly, publishedReport{userID, text, chart})
	return nil
}

func holdings() *models.PortfolioValuation {
	return &models.PortfolioValuation{
		Assets: []models.AssetValuation{{
			Symbol:   "BTC",
			Invested: decimal.NewFromInt(50000),
			Current:  decimal.NewFromInt(80000),
			Profit:   decimal.NewFromInt(30000),
		}},
		Totals: models.PortfolioTotals{
			Invested: decimal.NewFromInt(50000),
			Current:  decimal.NewFromInt(80000),
			Profit:   decimal.NewFromInt(30000),
			ROI:      decimal.NewFromInt(60),
		},
	}
}

func TestReportJob(t *testing.T) {
	t.Run("daily job reaches every subscribed user", func(t *testing.T) {
		directory := &fakeDirectory{ids: []int64{1, 2}}
		valuator := &fakeValuator{valuations: map[int64]*models.PortfolioValuation{
			1: holdings(),
			2: holdings(),
		}}
		publisher := &fakePublisher{}

		job := NewDailyReportJob(directory, valuator, &fakeRenderer{}, publisher, zerolog.Nop())
		require.NoError(t, job.Run())

		require.Len(t, publisher.daily, 2)
		assert.Equal(t, int64(1), publisher.daily[0].userID)
		assert.Equal(t, int64(2), publisher.daily[1].userID)
		assert.Contains(t, publisher.daily[0].text, "Daily report")
		assert.NotEmpty(t, publisher.daily[0].chart)
	})

	t.Run("unsubscribed users are skipped", func(t *testing.T) {
		directory := &fakeDirectory{
			ids: []int64{1, 2},
			settings: map[int64]*models.NotificationSettings{
				1: {UserID: 1, DailyReport: false, WeeklyReport: true},
			},
		}
		valuator := &fakeValuator{valuations: map[int64]*models.PortfolioValuation{
			1: holdings(),
			2: holdings(),
		}}
		publisher := &fakePublisher{}

		job := NewDailyReportJob(directory, valuator, &fakeRenderer{}, publisher, zerolog.Nop())
		require.NoError(t, job.Run())

		require.Len(t, publisher.daily, 1)
		assert.Equal(t, int64(2), publisher.daily[0].userID)
	})

	t.Run("empty portfolios get no report", func(t *testing.T) {
		directory := &fakeDirectory{ids: []int64{1}}
		valuator := &fakeValuator{}
		publisher := &fakePublisher{}

		job := NewDailyReportJob(directory, valuator, &fakeRenderer{}, publisher, zerolog.Nop())
		require.NoError(t, job.Run())
		assert.Empty(t, publisher.daily)
	})

	t.Run("one failing user does not block the rest", func(t *testing.T) {
		directory := &fakeDirectory{ids: []int64{1, 2}}
		valuator := &fakeValuator{
			valuations: map[int64]*models.PortfolioValuation{2: holdings()},
			errs:       map[int64]error{1: errors.New("storage down")},
		}
		publisher := &fakePublisher{}

		job := NewDailyReportJob(directory, valuator, &fakeRenderer{}, publisher, zerolog.Nop())
		require.NoError(t, job.Run())

		require.Len(t, publisher.daily, 1)
		assert.Equal(t, int64(2), publisher.daily[0].userID)
	})

	t.Run("chart failure degrades to text only", func(t *testing.T) {
		directory := &fakeDirectory{ids: []int64{1}}
		valuator := &fakeValuator{valuations: map[int64]*models.PortfolioValuation{1: holdings()}}
		publisher := &fakePublisher{}

		job := NewDailyReportJob(directory, valuator, &fakeRenderer{fail: true}, publisher, zerolog.Nop())
		require.NoError(t, job.Run())

		require.Len(t, publisher.daily, 1)
		assert.Nil(t, publisher.daily[0].chart)
		assert.NotEmpty(t, publisher.daily[0].text)
	})

	t.Run("weekly job honors the weekly flag and format", func(t *testing.T) {
		directory := &fakeDirectory{
			ids: []int64{1, 2},
			settings: map[int64]*models.NotificationSettings{
				2: {UserID: 2, DailyReport: true, WeeklyReport: false},
			},
		}
		valuator := &fakeValuator{valuations: map[int64]*models.PortfolioValuation{
			1: holdings(),
			2: holdings(),
		}}
		publisher := &fakePublisher{}

		job := NewWeeklyReportJob(directory, valuator, &fakeRenderer{}, publisher, zerolog.Nop())
		require.NoError(t, job.Run())

		require.Len(t, publisher.weekly, 1)
		assert.Equal(t, int64(1), publisher.weekly[0].userID)
		assert.Contains(t, publisher.weekly[0].text, "Weekly report")
		assert.Contains(t, publisher.weekly[0].text, "Top performer")
		assert.Empty(t, publisher.daily)
	})
}
