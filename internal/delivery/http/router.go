package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roomly-app/roomly-backend/internal/delivery/http/handler"
	"github.com/roomly-app/roomly-backend/internal/delivery/http/middleware"
)

type Router struct {
	profileHandler  *handler.ProfileHandler
	browseHandler   *handler.BrowseHandler
	interestHandler *handler.InterestHandler
	matchHandler    *handler.MatchHandler
	log             *zap.Logger
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	browseHandler *handler.BrowseHandler,
	interestHandler *handler.InterestHandler,
	matchHandler *handler.MatchHandler,
	log *zap.Logger,
) *Router {
	return &Router{
		profileHandler:  profileHandler,
		browseHandler:   browseHandler,
		interestHandler: interestHandler,
		matchHandler:    matchHandler,
		log:             log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(r.log),
		middleware.Recovery(r.log),
	)

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		profiles := v1.Group("/profiles")
		{
			profiles.POST("", r.profileHandler.CreateProfile)
			profiles.GET("/browse", r.browseHandler.Browse)
			profiles.POST("/suggest-bio", r.profileHandler.SuggestBio)
			profiles.GET("/:id", r.profileHandler.GetProfile)
			profiles.PUT("/:id", r.profileHandler.UpdateProfile)
		}

		interests := v1.Group("/interests")
		{
			interests.POST("", r.interestHandler.CreateInterest)
			interests.GET("", r.interestHandler.ListInterests)
			interests.POST("/:id/respond", r.interestHandler.RespondToInterest)
		}

		v1.GET("/matches", r.matchHandler.ListMatches)
	}

	return router
}
