package handler

import (
	"net/http"
	"strings"

	"github.com/gdugdh24/skillswap-backend/internal/repository"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Description Get current user with nested profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.UserWithProfile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	me, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, me)
}

// UpdateMyProfile handles PUT and PATCH /profile/me
// @Summary Update my profile
// @Description Update current user's account fields and profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateMeRequest true "Profile update data"
// @Success 200 {object} domain.UserWithProfile
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req profile.UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	me, err := h.profileUseCase.UpdateMyProfile(c.Request.Context(), userID, &req, partialUpdate(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, me)
}

// ListProfiles handles GET /profiles
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	profiles, err := h.profileUseCase.ListProfiles(c.Request.Context(), repository.ProfileFilter{
		Country: strings.TrimSpace(c.Query("country")),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req profile.CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profileUseCase.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// GetProfile handles GET /profiles/:id
// @Summary Get profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProfile handles PUT and PATCH /profiles/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profileUseCase.UpdateProfile(c.Request.Context(), id, &req, partialUpdate(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
