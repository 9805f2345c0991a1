package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomly-app/roomly-backend/internal/usecase/directory"
)

type ProfileHandler struct {
	directoryUseCase *directory.DirectoryUseCase
}

func NewProfileHandler(directoryUseCase *directory.DirectoryUseCase) *ProfileHandler {
	return &ProfileHandler{
		directoryUseCase: directoryUseCase,
	}
}

// CreateProfile handles POST /profiles
// @Summary Create profile
// @Description Create a new roommate-seeking profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body directory.CreateProfileRequest true "Profile data"
// @Success 201 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req directory.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	profile, err := h.directoryUseCase.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// UpdateProfile handles PUT /profiles/:id
// @Summary Update profile
// @Description Apply a partial update; is_active=false soft-deactivates
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path int true "Profile ID"
// @Param request body directory.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles/{id} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req directory.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	profile, err := h.directoryUseCase.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfile handles GET /profiles/:id
// @Summary Get profile
// @Tags profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	profile, err := h.directoryUseCase.GetProfile(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SuggestBio handles POST /profiles/suggest-bio
// @Summary Suggest bios
// @Description Draft profile bios from name, location and lifestyle
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body directory.SuggestBioRequest true "Bio inputs"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profiles/suggest-bio [post]
func (h *ProfileHandler) SuggestBio(c *gin.Context) {
	var req directory.SuggestBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	bios, err := h.directoryUseCase.SuggestBio(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bios)
}
