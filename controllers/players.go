package controllers

import (
	"Meeple/middleware"
	models "Meeple/models/postgres"
	sessionsvc "Meeple/services/sessions"
	"Meeple/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// @Summary Register a new player
// @Description Creates a player account and starts an authenticated session for it
// @Tags players
// @Accept json
// @Produce json
// @Param credentials body object{username=string,password=string} true "Username and password"
// @Success 201 {object} object{id=integer,username=string}
// @Failure 422 {object} object{error=string}
// @Router /signup [post]
func SignUp(db *gorm.DB, tokens sessionsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		username := strings.TrimSpace(req.Username)
		if len(username) < 3 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username must be at least 3 characters long"})
			return
		}
		if strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Password can't be empty"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
			return
		}

		player := models.Player{Username: username, PasswordHash: string(hash)}
		if err := db.Create(&player).Error; err != nil {
			if utils.IsUniqueViolation(err) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating player"})
			return
		}

		if err := middleware.StartSession(c, tokens, player.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": player.ID, "username": player.Username})
	}
}

// @Summary Log in
// @Description Verifies credentials and starts a session. The error is the
// same whether the username is unknown or the password wrong.
// @Tags players
// @Accept json
// @Produce json
// @Param credentials body object{username=string,password=string} true "Username and password"
// @Success 200 {object} object{id=integer,username=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB, tokens sessionsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		// Minimum input sanitizing
		if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var player models.Player
		if err := db.Where("username = ?", req.Username).First(&player).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		if err := middleware.StartSession(c, tokens, player.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": player.ID, "username": player.Username})
	}
}

// @Summary Check the current session
// @Description Returns the identity bound to the caller's session token, or 204 for anonymous callers
// @Tags players
// @Produce json
// @Success 200 {object} object{id=integer,username=string}
// @Success 204 "No session"
// @Router /check_session [get]
func CheckSession(db *gorm.DB, tokens sessionsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := middleware.CurrentPlayerID(c, tokens)
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}

		var player models.Player
		if err := db.Where("id = ?", playerID).First(&player).Error; err != nil {
			// Token outlived the account
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": player.ID, "username": player.Username})
	}
}

// Logout invalidates the caller's session binding. Logging out without a
// session is not an error.
func Logout(tokens sessionsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := middleware.EndSession(c, tokens); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary Delete the authenticated player's account
// @Description Deletes the player and, in the same transaction, every record
// that hangs off it: owned games, hosted game nights with their invitations,
// received invitations and friendship edges in both directions.
// @Tags players
// @Success 204 "Account deleted"
// @Failure 401 {object} object{error=string}
// @Router /players/me [delete]
func DeleteAccount(db *gorm.DB, tokens sessionsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		err := db.Transaction(func(tx *gorm.DB) error {
			// Invitations to nights this player hosts
			var hostedIDs []uint
			if err := tx.Model(&models.GameNight{}).Where("host_id = ?", playerID).
				Pluck("id", &hostedIDs).Error; err != nil {
				return err
			}
			if len(hostedIDs) > 0 {
				if err := tx.Where("game_night_id IN ?", hostedIDs).
					Delete(&models.GameNightInvitation{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("invitee_id = ?", playerID).
				Delete(&models.GameNightInvitation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("host_id = ?", playerID).Delete(&models.GameNight{}).Error; err != nil {
				return err
			}
			if err := tx.Where("requester_id = ? OR recipient_id = ?", playerID, playerID).
				Delete(&models.Friendship{}).Error; err != nil {
				return err
			}
			if err := tx.Where("player_id = ?", playerID).Delete(&models.PlayerGame{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Player{}, playerID).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting account"})
			return
		}

		if err := middleware.EndSession(c, tokens); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
