package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/usecase/directory"
)

type BrowseHandler struct {
	directoryUseCase *directory.DirectoryUseCase
}

func NewBrowseHandler(directoryUseCase *directory.DirectoryUseCase) *BrowseHandler {
	return &BrowseHandler{
		directoryUseCase: directoryUseCase,
	}
}

// Browse handles GET /profiles/browse
// @Summary Browse candidates
// @Description Filtered candidate list, always excluding the viewer
// @Tags profiles
// @Produce json
// @Param viewer_id query int true "Viewer's profile ID"
// @Param location query string false "Location substring (case-insensitive)"
// @Param min_age query int false "Minimum age"
// @Param max_age query int false "Maximum age"
// @Param budget_min query number false "Budget floor (range overlap)"
// @Param budget_max query number false "Budget ceiling (range overlap)"
// @Param preferred_gender query string false "male, female or any"
// @Success 200 {array} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles/browse [get]
func (h *BrowseHandler) Browse(c *gin.Context) {
	viewerID, ok := queryID(c, "viewer_id")
	if !ok {
		return
	}

	var req directory.BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid filter parameters"})
		return
	}

	profiles, err := h.directoryUseCase.Browse(c.Request.Context(), viewerID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	if profiles == nil {
		profiles = []*domain.UserProfile{}
	}
	c.JSON(http.StatusOK, profiles)
}
