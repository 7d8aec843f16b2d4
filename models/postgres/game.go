package postgres

import (
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrGameNameRequired = errors.New("game name must be provided")

/*
 * 'Game' is one title in the shared catalog. Details holds free-form
 * attributes (player counts, playtime, publisher...) as JSONB.
 */
type Game struct {
	ID      uint           `gorm:"primaryKey"`
	Name    string         `gorm:"size:100;not null"`
	Genre   string         `gorm:"size:50"`
	Details datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	// Ownership records referencing this game
	PlayerGames []PlayerGame `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

func (g *Game) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrGameNameRequired
	}
	return nil
}
