package main

import (
	"Meeple/config"
	"Meeple/models/postgres"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}
	return string(hash)
}

// Seeds the database with a small demo dataset. Wipes existing rows first.
func main() {
	godotenv.Load()

	db, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	if err := config.MigrateDatabase(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		log.Println("Clearing old data...")
		for _, model := range []interface{}{
			&postgres.GameNightInvitation{},
			&postgres.Friendship{},
			&postgres.PlayerGame{},
			&postgres.GameNight{},
			&postgres.Game{},
			&postgres.Player{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		log.Println("Seeding players...")
		players := []*postgres.Player{
			{Username: "BoardGameMaster", PasswordHash: mustHash("BoardGameMasterBoardGameMaster")},
			{Username: "MeeplePerson", PasswordHash: mustHash("password456")},
			{Username: "DiceRoller", PasswordHash: mustHash("password789")},
			{Username: "CardShark", PasswordHash: mustHash("cardpass")},
		}
		for _, p := range players {
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		log.Println("Seeding games...")
		games := []*postgres.Game{
			{Name: "Catan", Genre: "Strategy"},
			{Name: "Ticket to Ride", Genre: "Family"},
			{Name: "Gloomhaven", Genre: "Cooperative"},
			{Name: "Scythe", Genre: "Area Control"},
			{Name: "Wingspan", Genre: "Engine Builder"},
		}
		for _, g := range games {
			if err := tx.Create(g).Error; err != nil {
				return err
			}
		}

		log.Println("Seeding player game collections...")
		playerGames := []*postgres.PlayerGame{
			{PlayerID: players[0].ID, GameID: games[0].ID, Condition: postgres.ConditionGood},
			{PlayerID: players[0].ID, GameID: games[1].ID, Condition: postgres.ConditionNewInShrink},
			{PlayerID: players[1].ID, GameID: games[1].ID, Condition: postgres.ConditionWorn},
			{PlayerID: players[1].ID, GameID: games[2].ID, Condition: postgres.ConditionGood},
			{PlayerID: players[2].ID, GameID: games[3].ID, Condition: postgres.ConditionNewInShrink},
			{PlayerID: players[2].ID, GameID: games[4].ID, Condition: postgres.ConditionGood},
		}
		for _, pg := range playerGames {
			if err := tx.Create(pg).Error; err != nil {
				return err
			}
		}

		log.Println("Seeding game nights...")
		now := time.Now()
		nights := []*postgres.GameNight{
			{Title: "Strategy Sunday", Location: "BoardGameMaster's place",
				Date: now.AddDate(0, 0, 14), IsPublic: true, HostID: players[0].ID},
			{Title: "Co-op Campaign Night", Location: "MeeplePerson's apartment",
				Date: now.AddDate(0, 0, 16), IsPublic: false, HostID: players[1].ID},
			{Title: "Scythe Showdown", Location: "DiceRoller's den",
				Date: now.AddDate(0, 1, 0), IsPublic: true, HostID: players[2].ID},
		}
		for _, gn := range nights {
			if err := tx.Create(gn).Error; err != nil {
				return err
			}
		}

		log.Println("Seeding friendships...")
		friendships := []*postgres.Friendship{
			{RequesterID: players[0].ID, RecipientID: players[1].ID, Status: postgres.FriendshipPending},
			{RequesterID: players[1].ID, RecipientID: players[2].ID, Status: postgres.FriendshipAccepted},
			{RequesterID: players[0].ID, RecipientID: players[3].ID, Status: postgres.FriendshipAccepted},
		}
		for _, f := range friendships {
			if err := tx.Create(f).Error; err != nil {
				return err
			}
		}

		log.Println("Seeding game night invitations...")
		invitations := []*postgres.GameNightInvitation{
			{GameNightID: nights[0].ID, InviteeID: players[1].ID, Status: postgres.InvitationPending},
			{GameNightID: nights[1].ID, InviteeID: players[0].ID, Status: postgres.InvitationAccepted},
			{GameNightID: nights[2].ID, InviteeID: players[3].ID, Status: postgres.InvitationDeclined},
		}
		for _, inv := range invitations {
			if err := tx.Create(inv).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete!")
}
