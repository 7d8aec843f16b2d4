package postgres

import (
	"errors"

	"gorm.io/gorm"
)

// Closed set of physical conditions a copy can be in
const (
	ConditionNewInShrink = "New in Shrink"
	ConditionGood        = "Good"
	ConditionWorn        = "Worn"
)

var ErrInvalidCondition = errors.New("condition must be one of: New in Shrink, Good, Worn")

/*
 * 'PlayerGame' records that a player owns a copy of a game. A player can own
 * a given title at most once, enforced by the composite unique index.
 */
type PlayerGame struct {
	ID        uint   `gorm:"primaryKey"`
	Condition string `gorm:"size:20;not null"`
	PlayerID  uint   `gorm:"not null;uniqueIndex:idx_player_games_pair"`
	GameID    uint   `gorm:"not null;uniqueIndex:idx_player_games_pair"`

	// Relationships
	Player Player `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	Game   Game   `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

// GORM hook, keeps the condition inside the closed set
func (pg *PlayerGame) BeforeSave(tx *gorm.DB) error {
	switch pg.Condition {
	case ConditionNewInShrink, ConditionGood, ConditionWorn:
		return nil
	}
	return ErrInvalidCondition
}
