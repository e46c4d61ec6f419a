package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zain-cs/Social-Network-API/internal/dto"
)

func (h *Handler) userIDMiddleware(c *gin.Context) {
	userIDString := strings.TrimSpace(c.Param("userID"))
	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		c.Abort()
		return
	}

	c.Set("userID", userID)

	c.Next()
}

func (h *Handler) getUserID(c *gin.Context) int64 {
	return c.GetInt64("userID")
}

// targetID parses the :targetID path param; unlike :userID it is handled
// inline because not every route carries it.
func (h *Handler) targetID(c *gin.Context) (int64, bool) {
	targetIDString := strings.TrimSpace(c.Param("targetID"))
	targetID, err := strconv.ParseInt(targetIDString, 10, 64)
	if err != nil || targetID <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return 0, false
	}
	return targetID, true
}
