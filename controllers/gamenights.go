package controllers

import (
	"Meeple/middleware"
	models "Meeple/models/postgres"
	"Meeple/utils"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createGameNightRequest struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Date     string `json:"date"`
	IsPublic bool   `json:"is_public"`
}

// Allow-listed fields for partial game night updates
type updateGameNightRequest struct {
	Title    *string `json:"title"`
	Location *string `json:"location"`
	Date     *string `json:"date"`
	IsPublic *bool   `json:"is_public"`
}

func gameNightResponse(night *models.GameNight) gin.H {
	invitations := make([]gin.H, 0, len(night.Invitations))
	for _, inv := range night.Invitations {
		invitations = append(invitations, gin.H{
			"id":               inv.ID,
			"status":           inv.Status,
			"invitee_username": inv.Invitee.Username,
		})
	}
	return gin.H{
		"id":            night.ID,
		"title":         night.Title,
		"location":      night.Location,
		"date":          night.Date,
		"is_public":     night.IsPublic,
		"host_id":       night.HostID,
		"host_username": night.Host.Username,
		"invitations":   invitations,
	}
}

// @Summary List all game nights
// @Description Returns every game night with its host and invitation summaries
// @Tags gamenights
// @Produce json
// @Success 200 {array} object{id=integer,title=string,location=string,date=string}
// @Router /gamenights [get]
func ListGameNights(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var nights []models.GameNight
		if err := db.Preload("Host").Preload("Invitations.Invitee").Find(&nights).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching game nights"})
			return
		}

		response := make([]gin.H, 0, len(nights))
		for i := range nights {
			response = append(response, gameNightResponse(&nights[i]))
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Host a new game night
// @Description The authenticated caller becomes the host. The date must not be in the past.
// @Tags gamenights
// @Accept json
// @Produce json
// @Param gamenight body object{title=string,location=string,date=string,is_public=boolean} true "Game night"
// @Success 201 {object} object{id=integer,title=string}
// @Failure 401 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /gamenights [post]
func CreateGameNight(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		var req createGameNightRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Game night title must be provided"})
			return
		}
		if strings.TrimSpace(req.Location) == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Location must be provided"})
			return
		}

		date, err := utils.ParseEventDate(req.Date)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if date.Before(time.Now()) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Game night date cannot be in the past"})
			return
		}

		night := models.GameNight{
			Title:    req.Title,
			Location: req.Location,
			Date:     date,
			IsPublic: req.IsPublic,
			HostID:   playerID,
		}
		if err := db.Create(&night).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating game night"})
			return
		}

		// Reload with the host attached for the response
		if err := db.Preload("Host").Preload("Invitations.Invitee").First(&night, night.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching game night"})
			return
		}
		c.JSON(http.StatusCreated, gameNightResponse(&night))
	}
}

// @Summary Get one game night
// @Tags gamenights
// @Produce json
// @Param id path int true "Game night id"
// @Success 200 {object} object{id=integer,title=string}
// @Failure 404 {object} object{error=string}
// @Router /gamenights/{id} [get]
func GetGameNight(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game night not found"})
			return
		}

		var night models.GameNight
		if err := db.Preload("Host").Preload("Invitations.Invitee").First(&night, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game night not found"})
			return
		}
		c.JSON(http.StatusOK, gameNightResponse(&night))
	}
}

// @Summary Update a game night
// @Description Host only. A changed date is re-validated against the current time.
// @Tags gamenights
// @Accept json
// @Produce json
// @Param id path int true "Game night id"
// @Success 200 {object} object{id=integer,title=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /gamenights/{id} [patch]
func UpdateGameNight(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game night not found"})
			return
		}

		var night models.GameNight
		if err := db.First(&night, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game night not found"})
			return
		}
		if night.HostID != playerID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "401 Unauthorized"})
			return
		}

		var req updateGameNightRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Game night title must be provided"})
				return
			}
			night.Title = *req.Title
		}
		if req.Location != nil {
			if strings.TrimSpace(*req.Location) == "" {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Location must be provided"})
				return
			}
			night.Location = *req.Location
		}
		if req.Date != nil {
			date, err := utils.ParseEventDate(*req.Date)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if date.Before(time.Now()) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Game night date cannot be in the past"})
				return
			}
			night.Date = date
		}
		if req.IsPublic != nil {
			night.IsPublic = *req.IsPublic
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Save(&night).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating game night"})
			return
		}

		if err := db.Preload("Host").Preload("Invitations.Invitee").First(&night, night.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching game night"})
			return
		}
		c.JSON(http.StatusOK, gameNightResponse(&night))
	}
}

// @Summary Cancel a game night
// @Description Host only. Deletes the night and its invitations in one transaction.
// @Tags gamenights
// @Param id path int true "Game night id"
// @Success 204 "Game night deleted"
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /gamenights/{id} [delete]
func DeleteGameNight(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game night not found"})
			return
		}

		var night models.GameNight
		if err := db.First(&night, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game night not found"})
			return
		}
		if night.HostID != playerID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "401 Unauthorized"})
			return
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("game_night_id = ?", night.ID).
				Delete(&models.GameNightInvitation{}).Error; err != nil {
				return err
			}
			return tx.Delete(&night).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting game night"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
