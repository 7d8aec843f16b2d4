package middleware

import (
	sessionsvc "Meeple/services/sessions"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	tokenKey    = "session_token"
	playerIDKey = "player_id"
)

// CurrentPlayerID resolves the caller's opaque session token to a player id.
// The second return is false for anonymous callers and revoked or expired
// tokens.
func CurrentPlayerID(c *gin.Context, tokens sessionsvc.Store) (uint, bool) {
	session := sessions.Default(c)
	token, ok := session.Get(tokenKey).(string)
	if !ok || token == "" {
		return 0, false
	}
	playerID, ok, err := tokens.Lookup(token)
	if err != nil || !ok {
		return 0, false
	}
	return playerID, true
}

// AuthRequired is a simple middleware to check the session.
func AuthRequired(tokens sessionsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := CurrentPlayerID(c, tokens)
		if !ok {
			// Abort the request with the appropriate error code
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "401 Unauthorized"})
			return
		}
		c.Set(playerIDKey, playerID)
		// Continue down the chain to handler etc
		c.Next()
	}
}

// PlayerID returns the identity AuthRequired stored on the context.
func PlayerID(c *gin.Context) uint {
	return c.MustGet(playerIDKey).(uint)
}

// StartSession issues a fresh opaque token for playerID, binds it server-side
// and writes it to the cookie session.
func StartSession(c *gin.Context, tokens sessionsvc.Store, playerID uint) error {
	token := uuid.NewString()
	if err := tokens.Bind(token, playerID, sessionsvc.DefaultTTL); err != nil {
		return err
	}
	session := sessions.Default(c)
	session.Set(tokenKey, token)
	return session.Save()
}

// EndSession revokes the server-side binding and clears the cookie session.
func EndSession(c *gin.Context, tokens sessionsvc.Store) error {
	session := sessions.Default(c)
	if token, ok := session.Get(tokenKey).(string); ok && token != "" {
		if err := tokens.Revoke(token); err != nil {
			return err
		}
	}
	session.Delete(tokenKey)
	return session.Save()
}
