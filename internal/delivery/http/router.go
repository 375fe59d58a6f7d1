package http

import (
	"log"
	"net/http"

	"github.com/gdugdh24/skillswap-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/skillswap-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	profileHandler  *handler.ProfileHandler
	skillHandler    *handler.CatalogHandler[domain.Skill]
	interestHandler *handler.CatalogHandler[domain.Interest]
	matchHandler    *handler.MatchHandler
	authMiddleware  *middleware.AuthMiddleware
	logger          *log.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	profileHandler *handler.ProfileHandler,
	skillHandler *handler.CatalogHandler[domain.Skill],
	interestHandler *handler.CatalogHandler[domain.Interest],
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *log.Logger,
) *Router {
	return &Router{
		authHandler:     authHandler,
		userHandler:     userHandler,
		profileHandler:  profileHandler,
		skillHandler:    skillHandler,
		interestHandler: interestHandler,
		matchHandler:    matchHandler,
		authMiddleware:  authMiddleware,
		logger:          logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(middleware.NewAccessLogMiddleware(r.logger).Middleware())
	router.Use(gin.Recovery())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/token", r.authHandler.Login)
			auth.POST("/token/refresh", r.authHandler.Refresh)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			users := protected.Group("/users")
			{
				users.GET("", r.userHandler.ListUsers)
				users.POST("", r.userHandler.CreateUser)
				users.GET("/:id", r.userHandler.GetUser)
				users.PUT("/:id", r.userHandler.UpdateUser)
				users.PATCH("/:id", r.userHandler.UpdateUser)
			}

			profiles := protected.Group("/profiles")
			{
				profiles.GET("", r.profileHandler.ListProfiles)
				profiles.POST("", r.profileHandler.CreateProfile)
				profiles.GET("/:id", r.profileHandler.GetProfile)
				profiles.PUT("/:id", r.profileHandler.UpdateProfile)
				profiles.PATCH("/:id", r.profileHandler.UpdateProfile)
			}

			me := protected.Group("/profile")
			{
				me.GET("/me", r.profileHandler.GetMyProfile)
				me.PUT("/me", r.profileHandler.UpdateMyProfile)
				me.PATCH("/me", r.profileHandler.UpdateMyProfile)
			}

			skills := protected.Group("/skills")
			{
				skills.GET("", r.skillHandler.List)
				skills.POST("", r.skillHandler.Create)
				skills.GET("/:id", r.skillHandler.Get)
				skills.PUT("/:id", r.skillHandler.Update)
				skills.PATCH("/:id", r.skillHandler.Update)
				skills.DELETE("/:id", r.skillHandler.Delete)
			}

			interests := protected.Group("/interests")
			{
				interests.GET("", r.interestHandler.List)
				interests.POST("", r.interestHandler.Create)
				interests.GET("/:id", r.interestHandler.Get)
				interests.PUT("/:id", r.interestHandler.Update)
				interests.PATCH("/:id", r.interestHandler.Update)
				interests.DELETE("/:id", r.interestHandler.Delete)
			}

			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.ListMatches)
				matches.GET("/find_matches", r.matchHandler.FindMatches)
				matches.GET("/:id", r.matchHandler.GetMatch)
			}
		}
	}

	return router
}
