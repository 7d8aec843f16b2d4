package controllers

import (
	"Meeple/middleware"
	models "Meeple/models/postgres"
	"Meeple/utils"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createInvitationRequest struct {
	GameNightID     uint   `json:"game_night_id"`
	InviteeUsername string `json:"invitee_username"`
}

func invitationResponse(inv *models.GameNightInvitation) gin.H {
	return gin.H{
		"id":            inv.ID,
		"status":        inv.Status,
		"game_night_id": inv.GameNightID,
		"invitee_id":    inv.InviteeID,
	}
}

// @Summary Invite a player to a game night
// @Description Only the host may invite. A player can hold at most one
// invitation per game night.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation body object{game_night_id=integer,invitee_username=string} true "Invitation"
// @Success 201 {object} object{message=string,invitation=object}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{message=string}
// @Router /gamenight_invitations [post]
func CreateInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		var req createInvitationRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.GameNightID == 0 || req.InviteeUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Game night ID and invitee username required"})
			return
		}

		night, err := utils.CheckGameNightExists(db, req.GameNightID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game night not found"})
			return
		}
		if night.HostID != playerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "403 Forbidden: Only host can invite"})
			return
		}

		invitee, err := utils.FindPlayerByUsername(db, req.InviteeUsername)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitee not found"})
			return
		}
		if invitee.ID == playerID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot invite self to game night"})
			return
		}

		var existing models.GameNightInvitation
		result := db.Where("game_night_id = ? AND invitee_id = ?", night.ID, invitee.ID).
			First(&existing)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching invitations"})
			return
		}
		if result.RowsAffected > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "Already invited to this game night"})
			return
		}

		invitation := models.GameNightInvitation{
			GameNightID: night.ID,
			InviteeID:   invitee.ID,
			Status:      models.InvitationPending,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&invitation).Error
		})
		if err != nil {
			if utils.IsUniqueViolation(err) {
				// Pre-check raced with a concurrent invite for the same pair
				c.JSON(http.StatusConflict, gin.H{"error": "Invitation already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending invitation"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    fmt.Sprintf("Invitation sent to %s", invitee.Username),
			"invitation": invitationResponse(&invitation),
		})
	}
}

// @Summary Accept or decline a game night invitation
// @Description Only the invitee may respond, and only while the invitation is
// still pending. Both outcomes are terminal.
// @Tags invitations
// @Accept json
// @Produce json
// @Param id path int true "Invitation id"
// @Param response body object{action=string} true "accept or decline"
// @Success 200 {object} object{message=string,invitation=object}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /gamenight_invitations/{id} [patch]
func RespondInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}

		var invitation models.GameNightInvitation
		if err := db.First(&invitation, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}
		if invitation.InviteeID != playerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "403 Forbidden"})
			return
		}

		var req respondRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		var message string
		switch req.Action {
		case "accept":
			message = "Invitation accepted"
		case "decline":
			message = "Invitation declined"
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}

		if invitation.Status != models.InvitationPending {
			c.JSON(http.StatusConflict, gin.H{"error": "Invitation already responded to"})
			return
		}

		if req.Action == "accept" {
			invitation.Status = models.InvitationAccepted
		} else {
			invitation.Status = models.InvitationDeclined
		}
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Save(&invitation).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating invitation"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    message,
			"invitation": invitationResponse(&invitation),
		})
	}
}

// @Summary Remove a game night invitation
// @Description The night's host or the invitee may delete it
// @Tags invitations
// @Param id path int true "Invitation id"
// @Success 204 "Invitation removed"
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /gamenight_invitations/{id} [delete]
func RemoveInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}

		var invitation models.GameNightInvitation
		if err := db.Preload("GameNight").First(&invitation, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}

		if invitation.GameNight.HostID != playerID && invitation.InviteeID != playerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "403 Forbidden"})
			return
		}

		if err := db.Delete(&models.GameNightInvitation{}, invitation.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting invitation"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary Get the authenticated player's invitations
// @Description Each invitation carries a summary of its game night and host
// @Tags invitations
// @Produce json
// @Success 200 {array} object{id=integer,status=string,game_night_id=integer}
// @Failure 401 {object} object{error=string}
// @Router /players/me/gamenight_invitations [get]
func ListMyInvitations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		var invitations []models.GameNightInvitation
		err := db.Preload("GameNight.Host").
			Where("invitee_id = ?", playerID).
			Find(&invitations).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching invitations"})
			return
		}

		response := make([]gin.H, 0, len(invitations))
		for _, inv := range invitations {
			response = append(response, gin.H{
				"id":            inv.ID,
				"status":        inv.Status,
				"game_night_id": inv.GameNightID,
				"game_night": gin.H{
					"title":    inv.GameNight.Title,
					"date":     inv.GameNight.Date,
					"location": inv.GameNight.Location,
					"host":     gin.H{"username": inv.GameNight.Host.Username},
				},
			})
		}
		c.JSON(http.StatusOK, response)
	}
}
