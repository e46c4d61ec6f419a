package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zain-cs/Social-Network-API/internal/dto"
	"github.com/zain-cs/Social-Network-API/internal/service"
)

const (
	DEFAULT_COMMUNITY_DEPTH   = 3
	DEFAULT_SUGGESTIONS_LIMIT = 5
	DEFAULT_POPULAR_LIMIT     = 5
	DEFAULT_INFLUENCERS_LIMIT = 10
	MAX_LIMIT                 = 50
)

func (h *Handler) serviceErrorResponse(c *gin.Context, err error) {
	switch err {
	case service.ErrUserNotFound:
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	case service.ErrSelfFollow:
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
	case service.ErrAlreadyFollowing, service.ErrNotFollowing:
		c.JSON(http.StatusConflict, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
	}
}

func (h *Handler) registerUser(c *gin.Context) {
	userID := h.getUserID(c)

	if err := h.services.Graph.RegisterUser(c.Request.Context(), userID); err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBasicResponse(true, ""))
}

func (h *Handler) follow(c *gin.Context) {
	userID := h.getUserID(c)

	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	if err := h.services.Graph.Follow(c.Request.Context(), userID, targetID); err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) unfollow(c *gin.Context) {
	userID := h.getUserID(c)

	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	if err := h.services.Graph.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) getFollowing(c *gin.Context) {
	userID := h.getUserID(c)

	c.JSON(http.StatusOK, dto.NewUserListResponse(h.services.Graph.Following(c.Request.Context(), userID)))
}

func (h *Handler) getFollowers(c *gin.Context) {
	userID := h.getUserID(c)

	c.JSON(http.StatusOK, dto.NewUserListResponse(h.services.Graph.Followers(c.Request.Context(), userID)))
}

func (h *Handler) getRelation(c *gin.Context) {
	userID := h.getUserID(c)

	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.services.Graph.Relation(c.Request.Context(), userID, targetID))
}

func (h *Handler) getMutualFollowing(c *gin.Context) {
	userID := h.getUserID(c)

	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewUserListResponse(h.services.Graph.MutualFollowing(c.Request.Context(), userID, targetID)))
}

func (h *Handler) getMutualFollowers(c *gin.Context) {
	userID := h.getUserID(c)

	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewUserListResponse(h.services.Graph.MutualFollowers(c.Request.Context(), userID, targetID)))
}

func (h *Handler) getShortestPath(c *gin.Context) {
	userID := h.getUserID(c)

	targetID, ok := h.targetID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.services.Graph.ShortestPath(c.Request.Context(), userID, targetID))
}

func (h *Handler) getCommunitySize(c *gin.Context) {
	userID := h.getUserID(c)

	depth, ok := queryInt(c, "depth", DEFAULT_COMMUNITY_DEPTH)
	if !ok || depth < 0 {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidDepth.Error()))
		return
	}

	c.JSON(http.StatusOK, h.services.Graph.CommunitySize(c.Request.Context(), userID, depth))
}

func (h *Handler) getSuggestions(c *gin.Context) {
	userID := h.getUserID(c)

	limit, ok := limitQuery(c, DEFAULT_SUGGESTIONS_LIMIT)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.SuggestionsResponse{
		Suggestions: h.services.Graph.Suggestions(c.Request.Context(), userID, limit),
	})
}

func (h *Handler) getPopularInNetwork(c *gin.Context) {
	userID := h.getUserID(c)

	limit, ok := limitQuery(c, DEFAULT_POPULAR_LIMIT)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.RankingResponse{
		Users: h.services.Graph.PopularInNetwork(c.Request.Context(), userID, limit),
	})
}

func (h *Handler) getInfluencers(c *gin.Context) {
	minFollowers, ok := queryInt(c, "min_followers", 0)
	if !ok || minFollowers < 0 {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidMinFollowers.Error()))
		return
	}

	limit, ok := limitQuery(c, DEFAULT_INFLUENCERS_LIMIT)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.RankingResponse{
		Users: h.services.Graph.Influencers(c.Request.Context(), int64(minFollowers), limit),
	})
}

func (h *Handler) getNetworkStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Graph.NetworkStats(c.Request.Context()))
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func limitQuery(c *gin.Context, fallback int) (int, bool) {
	limit, ok := queryInt(c, "limit", fallback)
	if !ok || limit <= 0 || limit > MAX_LIMIT {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidLimit.Error()))
		return 0, false
	}
	return limit, true
}
