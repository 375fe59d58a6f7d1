package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func init() {
	// Report binding failures by JSON field name.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.UseJSONNames(v)
	}
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists per-field validation messages
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// bindJSON decodes and validates the body into obj, writing a 400 on
// failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	if verr, ok := validation.FromError(err); ok {
		respondError(c, verr)
		return false
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "invalid request body",
	})
	return false
}

// respondError maps a use case error to a status code and body.
func respondError(c *gin.Context, err error) {
	if verr, ok := domain.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		})
		return
	}

	status, message := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		status, message = http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrProfileNotFound):
		status, message = http.StatusNotFound, "profile not found"
	case errors.Is(err, domain.ErrSkillNotFound):
		status, message = http.StatusNotFound, "skill not found"
	case errors.Is(err, domain.ErrInterestNotFound):
		status, message = http.StatusNotFound, "interest not found"
	case errors.Is(err, domain.ErrMatchNotFound):
		status, message = http.StatusNotFound, "match not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "no active account found with the given credentials"
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrTokenRevoked):
		status, message = http.StatusUnauthorized, "token is invalid or expired"
	case errors.Is(err, domain.ErrCannotMatchSelf):
		status, message = http.StatusBadRequest, "cannot match with yourself"
	default:
		// Surfaced by the access log.
		_ = c.Error(err)
	}

	c.JSON(status, ErrorResponse{
		Error: message,
	})
}

func currentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// requireUser returns the authenticated caller, writing a 401 if absent.
func requireUser(c *gin.Context) (int, bool) {
	id, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
	}
	return id, ok
}

// pathID parses the :id route parameter, writing a 404 if it is not a
// positive integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "not found",
		})
		return 0, false
	}
	return id, true
}

// pagination reads limit and offset query parameters.
func pagination(c *gin.Context) (limit, offset int, ok bool) {
	verr := &domain.ValidationError{}

	limit = defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			verr.Add("limit", "a positive integer is required")
		} else if n > maxPageSize {
			limit = maxPageSize
		} else {
			limit = n
		}
	}

	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			verr.Add("offset", "a non-negative integer is required")
		} else {
			offset = n
		}
	}

	if verr.HasErrors() {
		respondError(c, verr)
		return 0, 0, false
	}
	return limit, offset, true
}

// partialUpdate reports whether the request is a PATCH.
func partialUpdate(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}
