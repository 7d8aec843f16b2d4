package utils

import (
	"Meeple/models/postgres"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Accepted layouts for game night dates, most specific first. The reference
// client submits ISO 8601 local datetimes without an offset.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseEventDate parses an ISO 8601 datetime string
func ParseEventDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date format, expected ISO 8601")
}

// IsUniqueViolation reports whether err comes from a violated uniqueness
// constraint. The constraint is the backstop invariant when a pre-insert
// check races, so these errors must map to a conflict response, never a 500.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// FindPlayerByUsername resolves a player by username
func FindPlayerByUsername(db *gorm.DB, username string) (*postgres.Player, error) {
	var player postgres.Player
	if err := db.Where("username = ?", username).First(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

// CheckGameNightExists fetches a game night by id
func CheckGameNightExists(db *gorm.DB, id uint) (*postgres.GameNight, error) {
	var night postgres.GameNight
	result := db.Where("id = ?", id).First(&night)
	if result.Error != nil {
		return nil, result.Error
	}
	return &night, nil
}
