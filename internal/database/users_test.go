package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	t.Run("EnsureUser registers a new user with defaults", func(t *testing.T) {
		testDB.TruncateAll(t)

		err := testDB.EnsureUser(100)
		require.NoError(t, err)

		currency, err := testDB.GetUserCurrency(100)
		require.NoError(t, err)
		assert.Equal(t, "usd", currency)

		settings, err := testDB.GetNotificationSettings(100)
		require.NoError(t, err)
		assert.True(t, settings.DailyReport)
		assert.True(t, settings.WeeklyReport)
	})

	t.Run("EnsureUser is idempotent", func(t *testing.T) {
		testDB.TruncateAll(t)

		require.NoError(t, testDB.EnsureUser(100))
		require.NoError(t, testDB.SetUserCurrency(100, "eur"))

		// A second call must not reset anything
		require.NoError(t, testDB.EnsureUser(100))

		currency, err := testDB.GetUserCurrency(100)
		require.NoError(t, err)
		assert.Equal(t, "eur", currency)
	})

	t.Run("GetUserCurrency defaults to usd for unknown users", func(t *testing.T) {
		testDB.TruncateAll(t)

		currency, err := testDB.GetUserCurrency(999)
		require.NoError(t, err)
		assert.Equal(t, "usd", currency)
	})

	t.Run("SetUserCurrency lowercases the stored code", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(100))

		err := testDB.SetUserCurrency(100, "EUR")
		require.NoError(t, err)

		currency, err := testDB.GetUserCurrency(100)
		require.NoError(t, err)
		assert.Equal(t, "eur", currency)
	})

	t.Run("SetUserCurrency errors for unknown users", func(t *testing.T) {
		testDB.TruncateAll(t)

		err := testDB.SetUserCurrency(999, "eur")
		require.Error(t, err)
	})

	t.Run("GetAllUserIDs lists every registered user", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(2))
		require.NoError(t, testDB.EnsureUser(1))
		require.NoError(t, testDB.EnsureUser(3))

		ids, err := testDB.GetAllUserIDs()
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, ids)
	})

	t.Run("ToggleDailyReport flips and returns the flag", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(100))

		enabled, err := testDB.ToggleDailyReport(100)
		require.NoError(t, err)
		assert.False(t, enabled)

		enabled, err = testDB.ToggleDailyReport(100)
		require.NoError(t, err)
		assert.True(t, enabled)
	})

	t.Run("ToggleWeeklyReport flips independently of daily", func(t *testing.T) {
		testDB.TruncateAll(t)
		require.NoError(t, testDB.EnsureUser(100))

		enabled, err := testDB.ToggleWeeklyReport(100)
		require.NoError(t, err)
		assert.False(t, enabled)

		settings, err := testDB.GetNotificationSettings(100)
		require.NoError(t, err)
		assert.True(t, settings.DailyReport)
		assert.False(t, settings.WeeklyReport)
	})

	t.Run("toggles error for users without settings", func(t *testing.T) {
		testDB.TruncateAll(t)

		_, err := testDB.ToggleDailyReport(999)
		require.Error(t, err)
	})
}
