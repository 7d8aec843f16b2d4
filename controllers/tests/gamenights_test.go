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

func TestCreateGameNight(t *testing.T) {
	server, _ := newTestServer(t)

	alice := newClient(t)
	aliceID := signUp(t, alice, server.URL, "Alice", "alicepassword")

	t.Run("requires authentication", func(t *testing.T) {
		anon := newClient(t)
		resp := doJSON(t, anon, http.MethodPost, server.URL+"/gamenights", gin.H{
			"title":    "Friday games",
			"location": "Alice's place",
			"date":     time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("past dates are always rejected", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodPost, server.URL+"/gamenights", gin.H{
			"title":    "Last week",
			"location": "Alice's place",
			"date":     time.Now().AddDate(0, 0, -7).Format(time.RFC3339),
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Game night date cannot be in the past", body.Error)
	})

	t.Run("missing title or location is rejected", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodPost, server.URL+"/gamenights", gin.H{
			"location": "Alice's place",
			"date":     time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, alice, http.MethodPost, server.URL+"/gamenights", gin.H{
			"title": "Friday games",
			"date":  time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("unparseable dates are rejected", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodPost, server.URL+"/gamenights", gin.H{
			"title":    "Friday games",
			"location": "Alice's place",
			"date":     "next friday",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("the caller becomes the host", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodPost, server.URL+"/gamenights", gin.H{
			"title":     "Friday games",
			"location":  "Alice's place",
			"date":      time.Now().AddDate(0, 0, 3).Format(time.RFC3339),
			"is_public": true,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created struct {
			Title        string `json:"title"`
			HostID       uint   `json:"host_id"`
			HostUsername string `json:"host_username"`
			IsPublic     bool   `json:"is_public"`
		}
		decodeBody(t, resp, &created)
		assert.Equal(t, "Friday games", created.Title)
		assert.Equal(t, aliceID, created.HostID)
		assert.Equal(t, "Alice", created.HostUsername)
		assert.True(t, created.IsPublic)
	})

	t.Run("minute precision dates are accepted", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodPost, server.URL+"/gamenights", gin.H{
			"title":    "Next month",
			"location": "Alice's place",
			"date":     time.Now().AddDate(0, 1, 0).Format("2006-01-02T15:04"),
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestUpdateGameNight(t *testing.T) {
	server, _ := newTestServer(t)

	alice := newClient(t)
	signUp(t, alice, server.URL, "Alice", "alicepassword")
	bob := newClient(t)
	signUp(t, bob, server.URL, "Bob", "bobpassword")

	nightID := createGameNight(t, alice, server.URL, "Friday games", time.Now().AddDate(0, 0, 3))
	url := server.URL + "/gamenights/1"

	t.Run("only the host may update", func(t *testing.T) {
		resp := doJSON(t, bob, http.MethodPatch, url, gin.H{"title": "Bob's now"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()

		// Unchanged
		resp = doJSON(t, bob, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var fetched struct {
			Title string `json:"title"`
		}
		decodeBody(t, resp, &fetched)
		assert.Equal(t, "Friday games", fetched.Title)
	})

	t.Run("host can change title, location and visibility", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodPatch, url, gin.H{
			"title":     "Saturday games",
			"location":  "the pub",
			"is_public": true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated struct {
			ID       uint   `json:"id"`
			Title    string `json:"title"`
			Location string `json:"location"`
			IsPublic bool   `json:"is_public"`
		}
		decodeBody(t, resp, &updated)
		assert.Equal(t, nightID, updated.ID)
		assert.Equal(t, "Saturday games", updated.Title)
		assert.Equal(t, "the pub", updated.Location)
		assert.True(t, updated.IsPublic)
	})

	t.Run("a new date is re-validated", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodPatch, url, gin.H{
			"date": time.Now().AddDate(0, 0, -1).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, alice, http.MethodPatch, url, gin.H{
			"date": time.Now().AddDate(0, 0, 10).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("unknown night is 404", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodPatch, server.URL+"/gamenights/999", gin.H{"title": "x"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestDeleteGameNight(t *testing.T) {
	server, db := newTestServer(t)

	alice := newClient(t)
	signUp(t, alice, server.URL, "Alice", "alicepassword")
	bob := newClient(t)
	signUp(t, bob, server.URL, "Bob", "bobpassword")

	nightID := createGameNight(t, alice, server.URL, "Friday games", time.Now().AddDate(0, 0, 3))
	invite(t, alice, server.URL, nightID, "Bob")
	url := server.URL + "/gamenights/1"

	t.Run("only the host may delete", func(t *testing.T) {
		resp := doJSON(t, bob, http.MethodDelete, url, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("deleting the night also removes its invitations", func(t *testing.T) {
		resp := doJSON(t, alice, http.MethodDelete, url, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, alice, http.MethodGet, url, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()

		var count int64
		db.Model(&models.GameNightInvitation{}).Count(&count)
		assert.Zero(t, count)
	})
}
