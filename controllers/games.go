package controllers

import (
	"Meeple/middleware"
	models "Meeple/models/postgres"
	"Meeple/utils"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type createGameRequest struct {
	Name    string          `json:"name"`
	Genre   string          `json:"genre"`
	Details json.RawMessage `json:"details"`
}

// Allow-listed fields for partial game updates. Anything else in the request
// body is ignored, never assigned.
type updateGameRequest struct {
	Name    *string         `json:"name"`
	Genre   *string         `json:"genre"`
	Details json.RawMessage `json:"details"`
}

func gameResponse(game *models.Game) gin.H {
	entries := make([]gin.H, 0, len(game.PlayerGames))
	for _, pg := range game.PlayerGames {
		entries = append(entries, gin.H{
			"id":              pg.ID,
			"condition":       pg.Condition,
			"player_id":       pg.PlayerID,
			"player_username": pg.Player.Username,
		})
	}
	return gin.H{
		"id":           game.ID,
		"name":         game.Name,
		"genre":        game.Genre,
		"details":      game.Details,
		"player_games": entries,
	}
}

// @Summary List all games in the catalog
// @Tags games
// @Produce json
// @Success 200 {array} object{id=integer,name=string,genre=string}
// @Router /games [get]
func ListGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var games []models.Game
		if err := db.Preload("PlayerGames.Player").Find(&games).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching games"})
			return
		}

		response := make([]gin.H, 0, len(games))
		for i := range games {
			response = append(response, gameResponse(&games[i]))
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Add a game to the catalog
// @Tags games
// @Accept json
// @Produce json
// @Param game body object{name=string,genre=string,details=object} true "Game"
// @Success 201 {object} object{id=integer,name=string,genre=string}
// @Failure 422 {object} object{error=string}
// @Router /games [post]
func CreateGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Game name must be provided"})
			return
		}

		game := models.Game{Name: req.Name, Genre: req.Genre}
		if len(req.Details) > 0 {
			game.Details = datatypes.JSON(req.Details)
		}
		if err := db.Create(&game).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating game"})
			return
		}
		c.JSON(http.StatusCreated, gameResponse(&game))
	}
}

// @Summary Get one game with its ownership records
// @Tags games
// @Produce json
// @Param id path int true "Game id"
// @Success 200 {object} object{id=integer,name=string,genre=string}
// @Failure 404 {object} object{error=string}
// @Router /games/{id} [get]
func GetGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		var game models.Game
		if err := db.Preload("PlayerGames.Player").First(&game, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, gameResponse(&game))
	}
}

// @Summary Update a game
// @Description Applies a partial update. Only name, genre and details can change.
// @Tags games
// @Accept json
// @Produce json
// @Param id path int true "Game id"
// @Success 200 {object} object{id=integer,name=string,genre=string}
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /games/{id} [patch]
func UpdateGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		var game models.Game
		if err := db.First(&game, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		var req updateGameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Game name must be provided"})
				return
			}
			game.Name = *req.Name
		}
		if req.Genre != nil {
			game.Genre = *req.Genre
		}
		if len(req.Details) > 0 {
			game.Details = datatypes.JSON(req.Details)
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Save(&game).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating game"})
			return
		}
		c.JSON(http.StatusOK, gameResponse(&game))
	}
}

// @Summary Remove a game from the catalog
// @Description Deletes the game and every ownership record referencing it
// @Tags games
// @Param id path int true "Game id"
// @Success 204 "Game deleted"
// @Failure 404 {object} object{error=string}
// @Router /games/{id} [delete]
func DeleteGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		var game models.Game
		if err := db.First(&game, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		// Cascade is explicit so it holds on stores without FK enforcement
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("game_id = ?", game.ID).Delete(&models.PlayerGame{}).Error; err != nil {
				return err
			}
			return tx.Delete(&game).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting game"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type addPlayerGameRequest struct {
	GameID    uint   `json:"game_id"`
	Condition string `json:"condition"`
}

// @Summary Register ownership of a game
// @Description Records that the authenticated player owns a copy of the game
// @Tags games
// @Accept json
// @Produce json
// @Param player_game body object{game_id=integer,condition=string} true "Game id and condition"
// @Success 201 {object} object{id=integer,condition=string,player_id=integer,game_id=integer}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Router /player_games [post]
func AddPlayerGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		var req addPlayerGameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		switch req.Condition {
		case models.ConditionNewInShrink, models.ConditionGood, models.ConditionWorn:
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Condition must be one of: New in Shrink, Good, Worn"})
			return
		}

		var game models.Game
		if err := db.First(&game, req.GameID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		entry := models.PlayerGame{
			Condition: req.Condition,
			PlayerID:  playerID,
			GameID:    game.ID,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&entry).Error
		})
		if err != nil {
			if utils.IsUniqueViolation(err) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "You already own this game"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding game to collection"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":        entry.ID,
			"condition": entry.Condition,
			"player_id": entry.PlayerID,
			"game_id":   entry.GameID,
		})
	}
}
