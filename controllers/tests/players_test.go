package controllers_test

import (
	models "Meeple/models/postgres"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("creates the player and starts a session", func(t *testing.T) {
		client := newClient(t)
		signUp(t, client, server.URL, "Alice", "alicepassword")

		resp := doJSON(t, client, http.MethodGet, server.URL+"/check_session", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var who struct {
			Username string `json:"username"`
		}
		decodeBody(t, resp, &who)
		assert.Equal(t, "Alice", who.Username)
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodPost, server.URL+"/signup", gin.H{
			"username": "Alice",
			"password": "otherpassword",
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Username already exists", body.Error)
	})

	t.Run("rejects usernames shorter than three characters", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodPost, server.URL+"/signup", gin.H{
			"username": "  ab  ",
			"password": "password",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("rejects empty passwords", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodPost, server.URL+"/signup", gin.H{
			"username": "Charlie",
			"password": "   ",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	server, _ := newTestServer(t)

	registrar := newClient(t)
	aliceID := signUp(t, registrar, server.URL, "Alice", "alicepassword")

	t.Run("wrong password is rejected", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodPost, server.URL+"/login", gin.H{
			"username": "Alice",
			"password": "wrongpassword",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Invalid username or password", body.Error)
	})

	t.Run("unknown username gets the same error as a wrong password", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodPost, server.URL+"/login", gin.H{
			"username": "Nobody",
			"password": "whatever",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Invalid username or password", body.Error)
	})

	t.Run("valid credentials bind the session to the player", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodPost, server.URL+"/login", gin.H{
			"username": "Alice",
			"password": "alicepassword",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, aliceID, body.ID)
		assert.Equal(t, "Alice", body.Username)

		resp = doJSON(t, client, http.MethodGet, server.URL+"/check_session", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var who struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &who)
		assert.Equal(t, aliceID, who.ID)
	})

	t.Run("empty parameters are a bad request", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodPost, server.URL+"/login", gin.H{
			"username": "",
			"password": "",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCheckSessionAndLogout(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("anonymous callers get 204", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodGet, server.URL+"/check_session", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		client := newClient(t)
		signUp(t, client, server.URL, "Bob", "bobpassword")

		resp := doJSON(t, client, http.MethodDelete, server.URL+"/logout", nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, client, http.MethodGet, server.URL+"/check_session", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("logout without a session is still 204", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodDelete, server.URL+"/logout", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestDeleteAccount(t *testing.T) {
	server, db := newTestServer(t)

	alice := newClient(t)
	aliceID := signUp(t, alice, server.URL, "Alice", "alicepassword")

	bob := newClient(t)
	signUp(t, bob, server.URL, "Bob", "bobpassword")

	// Give Alice a full footprint: a friendship, a hosted night with an
	// invitation, and an owned game.
	sendFriendRequest(t, alice, server.URL, "Bob")
	nightID := createGameNight(t, alice, server.URL, "Alice's night", time.Now().AddDate(0, 0, 7))
	invite(t, alice, server.URL, nightID, "Bob")

	resp := doJSON(t, alice, http.MethodPost, server.URL+"/games", gin.H{"name": "Catan"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var game struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &game)

	resp = doJSON(t, alice, http.MethodPost, server.URL+"/player_games", gin.H{
		"game_id":   game.ID,
		"condition": "Good",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	t.Run("requires authentication", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodDelete, server.URL+"/players/me", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("removes the player and everything hanging off it", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodDelete, server.URL+"/players/me", nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		var count int64
		db.Model(&models.Player{}).Where("id = ?", aliceID).Count(&count)
		assert.Zero(t, count)
		db.Model(&models.Friendship{}).Count(&count)
		assert.Zero(t, count)
		db.Model(&models.GameNight{}).Count(&count)
		assert.Zero(t, count)
		db.Model(&models.GameNightInvitation{}).Count(&count)
		assert.Zero(t, count)
		db.Model(&models.PlayerGame{}).Count(&count)
		assert.Zero(t, count)

		// The catalog entry itself is shared and survives
		db.Model(&models.Game{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("deleted accounts can no longer log in", func(t *testing.T) {
		client := newClient(t)
		resp := doJSON(t, client, http.MethodPost, server.URL+"/login", gin.H{
			"username": "Alice",
			"password": "alicepassword",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}
