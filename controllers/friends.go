package controllers

import (
	"Meeple/middleware"
	models "Meeple/models/postgres"
	"Meeple/utils"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type friendRequestRequest struct {
	Username string `json:"username"`
}

type respondRequest struct {
	Action string `json:"action"`
}

// findFriendshipBetween looks up the edge between two players in either
// direction. Direction is irrelevant for the uniqueness invariant.
func findFriendshipBetween(db *gorm.DB, a, b uint) (*models.Friendship, error) {
	var edge models.Friendship
	err := db.Where(
		"(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
		a, b, b, a,
	).First(&edge).Error
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// @Summary Send a friend request
// @Description Creates a pending friendship edge towards the named player.
// A declined edge between the pair is replaced by a fresh pending request;
// pending and accepted edges conflict, a blocked edge forbids the request.
// @Tags friends
// @Accept json
// @Produce json
// @Param request body object{username=string} true "Recipient username"
// @Success 201 {object} object{message=string,friendship_id=integer}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{message=string}
// @Router /friend_requests [post]
func SendFriendRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		var req friendRequestRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient username required"})
			return
		}

		recipient, err := utils.FindPlayerByUsername(db, req.Username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
			return
		}
		if recipient.ID == playerID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send friend request to self"})
			return
		}

		existing, err := findFriendshipBetween(db, playerID, recipient.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friendships"})
			return
		}
		if existing != nil {
			switch existing.Status {
			case models.FriendshipPending:
				c.JSON(http.StatusConflict, gin.H{"message": "Friend request already pending"})
				return
			case models.FriendshipAccepted:
				c.JSON(http.StatusConflict, gin.H{"message": "Already friends"})
				return
			case models.FriendshipBlocked:
				c.JSON(http.StatusForbidden, gin.H{"message": "User is blocked or has blocked you"})
				return
			}
		}

		newEdge := models.Friendship{
			RequesterID: playerID,
			RecipientID: recipient.ID,
			Status:      models.FriendshipPending,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			// A declined edge does not block a new request; replace it so the
			// unordered-pair invariant holds
			if existing != nil {
				if err := tx.Delete(&models.Friendship{}, existing.ID).Error; err != nil {
					return err
				}
			}
			return tx.Create(&newEdge).Error
		})
		if err != nil {
			if utils.IsUniqueViolation(err) {
				// Pre-check raced with a concurrent request for the same pair
				c.JSON(http.StatusConflict, gin.H{"error": "Friend request already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending friend request"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent", "friendship_id": newEdge.ID})
	}
}

// @Summary Accept or decline a friend request
// @Description Only the recipient of a pending request may respond. Both
// outcomes are terminal for the edge.
// @Tags friends
// @Accept json
// @Produce json
// @Param id path int true "Friendship id"
// @Param response body object{action=string} true "accept or decline"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /friend_requests/{id} [patch]
func RespondFriendRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
			return
		}

		var edge models.Friendship
		if err := db.First(&edge, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
			return
		}
		if edge.RecipientID != playerID {
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
			message = "Friend request accepted"
		case "decline":
			message = "Friend request declined"
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}

		if edge.Status != models.FriendshipPending {
			c.JSON(http.StatusConflict, gin.H{"error": "Friend request already responded to"})
			return
		}

		if req.Action == "accept" {
			edge.Status = models.FriendshipAccepted
		} else {
			edge.Status = models.FriendshipDeclined
		}
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Save(&edge).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating friend request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// @Summary Remove a friendship or withdraw a request
// @Description Either endpoint of the edge may delete it, regardless of status
// @Tags friends
// @Param id path int true "Friendship id"
// @Success 204 "Friendship removed"
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /friend_requests/{id} [delete]
func RemoveFriendship(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
			return
		}

		var edge models.Friendship
		if err := db.First(&edge, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
			return
		}
		if edge.RequesterID != playerID && edge.RecipientID != playerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "403 Forbidden"})
			return
		}

		if err := db.Delete(&edge).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting friend"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// friendsOf returns the distinct players connected to playerID by an accepted
// edge in either direction.
func friendsOf(db *gorm.DB, playerID uint) ([]models.Player, error) {
	var edges []models.Friendship
	err := db.Where(
		"(requester_id = ? OR recipient_id = ?) AND status = ?",
		playerID, playerID, models.FriendshipAccepted,
	).Find(&edges).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(edges))
	friendIDs := make([]uint, 0, len(edges))
	for _, edge := range edges {
		friendID := edge.RequesterID
		if friendID == playerID {
			friendID = edge.RecipientID
		}
		if !seen[friendID] {
			seen[friendID] = true
			friendIDs = append(friendIDs, friendID)
		}
	}

	friends := []models.Player{}
	if len(friendIDs) > 0 {
		if err := db.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
			return nil, err
		}
	}
	return friends, nil
}

// @Summary Get a list of the authenticated player's friends
// @Description Returns the distinct players connected by an accepted friendship edge in either direction
// @Tags friends
// @Produce json
// @Success 200 {array} object{id=integer,username=string}
// @Failure 401 {object} object{error=string}
// @Router /players/me/friends [get]
func ListFriends(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		friends, err := friendsOf(db, playerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friendships"})
			return
		}

		simplifiedFriends := make([]gin.H, 0, len(friends))
		for _, friend := range friends {
			simplifiedFriends = append(simplifiedFriends, gin.H{
				"id":       friend.ID,
				"username": friend.Username,
			})
		}
		c.JSON(http.StatusOK, simplifiedFriends)
	}
}

// @Summary Get pending incoming friend requests
// @Tags friends
// @Produce json
// @Success 200 {array} object{id=integer,status=string,requester_id=integer}
// @Failure 401 {object} object{error=string}
// @Router /players/me/friend_requests/pending [get]
func ListPendingFriendRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		var edges []models.Friendship
		err := db.Preload("Requester").
			Where("recipient_id = ? AND status = ?", playerID, models.FriendshipPending).
			Find(&edges).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friend requests"})
			return
		}

		pending := make([]gin.H, 0, len(edges))
		for _, edge := range edges {
			pending = append(pending, gin.H{
				"id":           edge.ID,
				"status":       edge.Status,
				"requester_id": edge.RequesterID,
				"requester":    gin.H{"username": edge.Requester.Username},
			})
		}
		c.JSON(http.StatusOK, pending)
	}
}

// @Summary Get the game nights hosted by the player's friends
// @Description Union of the nights hosted by every current friend, newest date first
// @Tags friends
// @Produce json
// @Success 200 {array} object{id=integer,title=string,host_username=string}
// @Failure 401 {object} object{error=string}
// @Router /friends_gamenights [get]
func ListFriendsGameNights(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := middleware.PlayerID(c)

		friends, err := friendsOf(db, playerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friendships"})
			return
		}

		usernames := make(map[uint]string, len(friends))
		friendIDs := make([]uint, 0, len(friends))
		for _, friend := range friends {
			usernames[friend.ID] = friend.Username
			friendIDs = append(friendIDs, friend.ID)
		}

		response := []gin.H{}
		if len(friendIDs) > 0 {
			var nights []models.GameNight
			err := db.Where("host_id IN ?", friendIDs).
				Order("date DESC").
				Find(&nights).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching game nights"})
				return
			}
			for _, night := range nights {
				response = append(response, gin.H{
					"id":            night.ID,
					"title":         night.Title,
					"location":      night.Location,
					"date":          night.Date,
					"host_id":       night.HostID,
					"host_username": usernames[night.HostID],
				})
			}
		}
		c.JSON(http.StatusOK, response)
	}
}
