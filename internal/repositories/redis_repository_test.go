package repository_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/config"
	repository "github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLoginRateLimit(t *testing.T) {
	now := time.Unix(1_700_000_000, 123)
	cfg := &config.Config{RateConfig: config.RateConfig{MaxAttempts: 5, WindowSize: 15 * time.Second}}

	username := "dealer@example.com"
	key := repository.LoginAttemptsKey(username)
	windowStart := strconv.FormatInt(now.Unix()-15, 10)
	member := redis.Z{Score: float64(now.Unix()), Member: strconv.FormatInt(now.UnixNano(), 10)}

	expectPipeline := func(mock redismock.ClientMock, attempts int64) {
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetVal(0)
		mock.ExpectZAdd(key, member).SetVal(1)
		mock.ExpectZCard(key).SetVal(attempts)
		mock.ExpectExpire(key, 15*time.Second).SetVal(true)
	}

	t.Run("Allowed - Remaining Attempts Reported", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return now })
		expectPipeline(mock, 2)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(t.Context(), username)

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 3, remaining)
		assert.Equal(t, 0, retryAfter)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Allowed - Last Attempt In Window", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return now })
		expectPipeline(mock, 5)

		allowed, remaining, _, err := repo.CheckLoginRateLimit(t.Context(), username)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 0, remaining)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Blocked - Retry After Oldest Attempt Leaves Window", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return now })
		expectPipeline(mock, 6)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(now.Unix() - 10), Member: "first"}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(t.Context(), username)

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
		assert.Equal(t, 5, retryAfter)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - Pipeline Fails", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return now })
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetErr(errors.New("connection refused"))

		allowed, _, _, err := repo.CheckLoginRateLimit(t.Context(), username)

		assert.False(t, allowed)
		assert.ErrorContains(t, err, "rate limit")
	})
}
