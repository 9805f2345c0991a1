package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/usecase/engine"
)

type InterestHandler struct {
	engineUseCase *engine.EngineUseCase
}

func NewInterestHandler(engineUseCase *engine.EngineUseCase) *InterestHandler {
	return &InterestHandler{
		engineUseCase: engineUseCase,
	}
}

// CreateInterest handles POST /interests
// @Summary Express interest
// @Description Create a pending interest from requester to target
// @Tags interests
// @Accept json
// @Produce json
// @Param request body engine.CreateInterestRequest true "Interest data"
// @Success 201 {object} domain.Interest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /interests [post]
func (h *InterestHandler) CreateInterest(c *gin.Context) {
	var req engine.CreateInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	interest, err := h.engineUseCase.CreateInterest(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interest)
}

// RespondToInterest handles POST /interests/:id/respond
// @Summary Respond to an interest
// @Description Accept or reject a pending interest; acceptance creates the match
// @Tags interests
// @Accept json
// @Produce json
// @Param id path int true "Interest ID"
// @Param request body engine.RespondRequest true "Decision"
// @Success 200 {object} engine.RespondResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /interests/{id}/respond [post]
func (h *InterestHandler) RespondToInterest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req engine.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.engineUseCase.RespondToInterest(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListInterests handles GET /interests
// @Summary List interests
// @Description Sent or received interests with counterpart profiles
// @Tags interests
// @Produce json
// @Param user_id query int true "User's profile ID"
// @Param direction query string true "sent or received"
// @Success 200 {array} domain.InterestWithProfile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /interests [get]
func (h *InterestHandler) ListInterests(c *gin.Context) {
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	interests, err := h.engineUseCase.ListInterests(c.Request.Context(), userID, c.Query("direction"))
	if err != nil {
		writeError(c, err)
		return
	}

	if interests == nil {
		interests = []*domain.InterestWithProfile{}
	}
	c.JSON(http.StatusOK, interests)
}
