package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/usecase/engine"
)

type MatchHandler struct {
	engineUseCase *engine.EngineUseCase
}

func NewMatchHandler(engineUseCase *engine.EngineUseCase) *MatchHandler {
	return &MatchHandler{
		engineUseCase: engineUseCase,
	}
}

// ListMatches handles GET /matches
// @Summary List matches
// @Description The user's matches with the other party's profile
// @Tags matches
// @Produce json
// @Param user_id query int true "User's profile ID"
// @Success 200 {array} domain.MatchWithProfile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	matches, err := h.engineUseCase.ListMatches(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	if matches == nil {
		matches = []*domain.MatchWithProfile{}
	}
	c.JSON(http.StatusOK, matches)
}
