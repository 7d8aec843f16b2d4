package postgres

import (
	"errors"

	"gorm.io/gorm"
)

// Friendship edge states. 'blocked' is terminal and only ever created
// directly; no transition from pending or accepted reaches it.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipDeclined = "declined"
	FriendshipBlocked  = "blocked"
)

var (
	ErrInvalidFriendshipStatus = errors.New("friendship status must be one of: pending, accepted, declined, blocked")
	ErrSelfFriendship          = errors.New("cannot create a friendship with yourself")
)

/*
 * 'Friendship' is a directed request edge between two players carrying a
 * status. At most one edge may exist per unordered player pair: the ordered
 * unique index catches same-direction duplicates, the symmetric lookup done
 * before every insert catches the reverse direction.
 */
type Friendship struct {
	ID          uint   `gorm:"primaryKey"`
	Status      string `gorm:"size:20;not null;default:'pending'"`
	RequesterID uint   `gorm:"not null;uniqueIndex:idx_friendships_pair"`
	RecipientID uint   `gorm:"not null;uniqueIndex:idx_friendships_pair"`

	// Relationships
	Requester Player `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	Recipient Player `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
}

// GORM hook to keep the status inside the closed set and the edge off the
// diagonal
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	if f.RequesterID == f.RecipientID {
		return ErrSelfFriendship
	}
	switch f.Status {
	case FriendshipPending, FriendshipAccepted, FriendshipDeclined, FriendshipBlocked:
		return nil
	}
	return ErrInvalidFriendshipStatus
}
