package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/usecase/directory"
)

// ErrorResponse is the response structure for errors
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Unknown errors become an
// opaque 500 so internals never leak to clients.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrSelfInterest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrInterestNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotInterestTarget):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrDuplicateInterest),
		errors.Is(err, domain.ErrInterestResolved):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, directory.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// writeBindError reports which fields failed binding instead of a bare
// "invalid request body".
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: check " + strings.Join(fields, ", "),
		})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Query(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}
