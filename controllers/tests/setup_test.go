package controllers_test

import (
	"Meeple/config"
	"Meeple/middleware"
	"Meeple/routes"
	sessionsvc "Meeple/services/sessions"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive for the whole test
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.MigrateDatabase(db))
	return db
}

// newTestServer boots the full router against a fresh database and an
// in-memory session store.
func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	t.Setenv("SESSION_KEY", "test-session-key")
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)

	r := gin.New()
	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, db, sessionsvc.NewMemoryStore())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, db
}

// newClient returns a client with its own cookie jar, i.e. one logged-in
// browser.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar:     jar,
		Timeout: time.Second * 10,
	}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// signUp registers a player through the API and returns its id. The client's
// jar ends up holding an authenticated session.
func signUp(t *testing.T, client *http.Client, baseURL, username, password string) uint {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/signup", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(t, resp, &created)
	require.Equal(t, username, created.Username)
	return created.ID
}

func createGameNight(t *testing.T, client *http.Client, baseURL, title string, date time.Time) uint {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/gamenights", gin.H{
		"title":    title,
		"location": "somewhere",
		"date":     date.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)
	return created.ID
}

// invite sends a game night invitation and returns the invitation id
func invite(t *testing.T, client *http.Client, baseURL string, nightID uint, invitee string) uint {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/gamenight_invitations", gin.H{
		"game_night_id":    nightID,
		"invitee_username": invitee,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Invitation struct {
			ID uint `json:"id"`
		} `json:"invitation"`
	}
	decodeBody(t, resp, &created)
	return created.Invitation.ID
}

// sendFriendRequest sends a request and returns the friendship id
func sendFriendRequest(t *testing.T, client *http.Client, baseURL, recipient string) uint {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/friend_requests", gin.H{
		"username": recipient,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		FriendshipID uint `json:"friendship_id"`
	}
	decodeBody(t, resp, &created)
	return created.FriendshipID
}
