package postgres

import (
	"errors"

	"gorm.io/gorm"
)

// Invitation states. Accept and decline are both terminal.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

var ErrInvalidInvitationStatus = errors.New("invitation status must be one of: pending, accepted, declined")

/*
 * 'GameNightInvitation' links one game night to one invited player. A player
 * can be invited to a given night at most once (composite unique index).
 */
type GameNightInvitation struct {
	ID          uint   `gorm:"primaryKey"`
	Status      string `gorm:"size:20;not null;default:'pending'"`
	GameNightID uint   `gorm:"not null;uniqueIndex:idx_game_night_invitations_pair"`
	InviteeID   uint   `gorm:"not null;uniqueIndex:idx_game_night_invitations_pair"`

	// Relationships
	GameNight GameNight `gorm:"foreignKey:GameNightID;constraint:OnDelete:CASCADE"`
	Invitee   Player    `gorm:"foreignKey:InviteeID;constraint:OnDelete:CASCADE"`
}

// GORM hook, keeps the status inside the closed set
func (i *GameNightInvitation) BeforeSave(tx *gorm.DB) error {
	switch i.Status {
	case InvitationPending, InvitationAccepted, InvitationDeclined:
		return nil
	}
	return ErrInvalidInvitationStatus
}
