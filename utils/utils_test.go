package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseEventDate(t *testing.T) {
	t.Run("accepts common ISO 8601 shapes", func(t *testing.T) {
		for _, value := range []string{
			"2026-10-05T19:30:00Z",
			"2026-10-05T19:30:00+02:00",
			"2026-10-05T19:30:00",
			"2026-10-05T19:30",
		} {
			parsed, err := ParseEventDate(value)
			require.NoError(t, err, value)
			assert.Equal(t, 2026, parsed.Year())
			assert.Equal(t, time.October, parsed.Month())
			assert.Equal(t, 19, parsed.Hour())
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, value := range []string{"", "next friday", "05/10/2026", "2026-10-05"} {
			_, err := ParseEventDate(value)
			assert.Error(t, err, value)
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))

	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "idx_friendships_pair"`)))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: player_games.player_id, player_games.game_id")))
}
