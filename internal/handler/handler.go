package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/zain-cs/Social-Network-API/internal/service"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "DELETE"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users/:userID")
		{
			users.Use(h.userIDMiddleware)

			users.POST("", h.registerUser)
			users.GET("/following", h.getFollowing)
			users.GET("/followers", h.getFollowers)
			users.POST("/following/:targetID", h.follow)
			users.DELETE("/following/:targetID", h.unfollow)
			users.GET("/following/:targetID", h.getRelation)
			users.GET("/mutual-following/:targetID", h.getMutualFollowing)
			users.GET("/mutual-followers/:targetID", h.getMutualFollowers)
			users.GET("/path/:targetID", h.getShortestPath)
			users.GET("/community", h.getCommunitySize)
			users.GET("/suggestions", h.getSuggestions)
			users.GET("/popular", h.getPopularInNetwork)
		}

		graph := v1.Group("/graph")
		{
			graph.GET("/influencers", h.getInfluencers)
			graph.GET("/stats", h.getNetworkStats)
		}
	}

	return r
}
