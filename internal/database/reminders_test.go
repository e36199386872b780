package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptofolio/portfolio-service/internal/models"
)

func TestRemindersRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	newReminder := func(userID int64, coin string, target float64) *models.Reminder {
		return &models.Reminder{
			UserID:      userID,
			Coin:        coin,
			TargetPrice: decimal.NewFromFloat(target),
		}
	}

	t.Run("CreateReminder assigns id and defaults", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(100))

		r := newReminder(100, "bitcoin", 50000)
		err := testDB.CreateReminder(r)
		require.NoError(t, err)
		assert.NotZero(t, r.ID)
		assert.False(t, r.Notified)
		assert.False(t, r.CreatedAt.IsZero())
	})

	t.Run("GetActiveReminders returns only the user's unfired reminders", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(100))
		require.NoError(t, testDB.EnsureUser(200))

		mine := newReminder(100, "bitcoin", 50000)
		fired := newReminder(100, "ethereum", 5000)
		other := newReminder(200, "solana", 300)
		require.NoError(t, testDB.CreateReminder(mine))
		require.NoError(t, testDB.CreateReminder(fired))
		require.NoError(t, testDB.CreateReminder(other))
		require.NoError(t, testDB.MarkReminderNotified(fired.ID))

		active, err := testDB.GetActiveReminders(100)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "bitcoin", active[0].Coin)
	})

	t.Run("GetAllActiveReminders spans users", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(100))
		require.NoError(t, testDB.EnsureUser(200))

		require.NoError(t, testDB.CreateReminder(newReminder(100, "bitcoin", 50000)))
		require.NoError(t, testDB.CreateReminder(newReminder(200, "ethereum", 5000)))

		active, err := testDB.GetAllActiveReminders()
		require.NoError(t, err)
		assert.Len(t, active, 2)
	})

	t.Run("MarkReminderNotified removes it from the active set", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(100))

		r := newReminder(100, "bitcoin", 50000)
		require.NoError(t, testDB.CreateReminder(r))

		require.NoError(t, testDB.MarkReminderNotified(r.ID))

		active, err := testDB.GetAllActiveReminders()
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("MarkReminderNotified errors for unknown id", func(t *testing.T) {
		testDB.TruncateAll(t)

		err := testDB.MarkReminderNotified(12345)
		require.Error(t, err)
	})

	t.Run("target price precision survives the round trip", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(100))

		r := newReminder(100, "dogecoin", 0.123456789)
		require.NoError(t, testDB.CreateReminder(r))

		active, err := testDB.GetActiveReminders(100)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.True(t, decimal.NewFromFloat(0.123456789).Equal(active[0].TargetPrice))
	})
}
