package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTitleRequired    = errors.New("game night title must be provided")
	ErrLocationRequired = errors.New("game night location must be provided")
)

/*
 * 'GameNight' is an event hosted by exactly one player. Its invitations are
 * removed with it.
 */
type GameNight struct {
	ID       uint      `gorm:"primaryKey"`
	Title    string    `gorm:"size:100;not null"`
	Location string    `gorm:"size:100;not null"`
	Date     time.Time `gorm:"not null"`
	IsPublic bool      `gorm:"not null;default:false"`
	HostID   uint      `gorm:"not null;index:idx_game_nights_host"`

	// Relationships
	Host        Player                `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
	Invitations []GameNightInvitation `gorm:"foreignKey:GameNightID;constraint:OnDelete:CASCADE"`
}

func (gn *GameNight) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(gn.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(gn.Location) == "" {
		return ErrLocationRequired
	}
	return nil
}
