package routes

import (
	"Meeple/controllers"
	"Meeple/middleware"
	sessionsvc "Meeple/services/sessions"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, tokens sessionsvc.Store) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(db, tokens))
	api.POST("/login", controllers.Login(db, tokens))
	api.GET("/check_session", controllers.CheckSession(db, tokens))
	api.DELETE("/logout", controllers.Logout(tokens))

	api.GET("/games", controllers.ListGames(db))
	api.POST("/games", controllers.CreateGame(db))
	api.GET("/games/:id", controllers.GetGame(db))
	api.PATCH("/games/:id", controllers.UpdateGame(db))
	api.DELETE("/games/:id", controllers.DeleteGame(db))

	api.GET("/gamenights", controllers.ListGameNights(db))
	api.GET("/gamenights/:id", controllers.GetGameNight(db))

	// Routes that require authentication
	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthRequired(tokens))
	{
		authenticated.POST("/gamenights", controllers.CreateGameNight(db))
		authenticated.PATCH("/gamenights/:id", controllers.UpdateGameNight(db))
		authenticated.DELETE("/gamenights/:id", controllers.DeleteGameNight(db))

		authenticated.POST("/player_games", controllers.AddPlayerGame(db))

		authenticated.POST("/friend_requests", controllers.SendFriendRequest(db))
		authenticated.PATCH("/friend_requests/:id", controllers.RespondFriendRequest(db))
		authenticated.DELETE("/friend_requests/:id", controllers.RemoveFriendship(db))

		authenticated.GET("/players/me/friends", controllers.ListFriends(db))
		authenticated.GET("/players/me/friend_requests/pending", controllers.ListPendingFriendRequests(db))
		authenticated.GET("/friends_gamenights", controllers.ListFriendsGameNights(db))

		authenticated.POST("/gamenight_invitations", controllers.CreateInvitation(db))
		authenticated.PATCH("/gamenight_invitations/:id", controllers.RespondInvitation(db))
		authenticated.DELETE("/gamenight_invitations/:id", controllers.RemoveInvitation(db))
		authenticated.GET("/players/me/gamenight_invitations", controllers.ListMyInvitations(db))

		authenticated.DELETE("/players/me", controllers.DeleteAccount(db, tokens))
	}
}
