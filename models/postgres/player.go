package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidUsername = errors.New("username must be at least 3 characters long")

/*
 * 'Player' contains the blueprint definition of a player account. Every
 * dependent record (owned games, hosted game nights, invitations and
 * friendship edges in both directions) hangs off it with ON DELETE CASCADE.
 */
type Player struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	PlayerGames            []PlayerGame          `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	GameNightsHosted       []GameNight           `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
	Invitations            []GameNightInvitation `gorm:"foreignKey:InviteeID;constraint:OnDelete:CASCADE"`
	SentFriendRequests     []Friendship          `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	ReceivedFriendRequests []Friendship          `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
}

// GORM hook to keep unusable usernames out of the table
func (p *Player) BeforeSave(tx *gorm.DB) error {
	if len(strings.TrimSpace(p.Username)) < 3 {
		return ErrInvalidUsername
	}
	return nil
}
