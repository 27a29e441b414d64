package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// errorMapping ties an error kind to its HTTP status and code
type errorMapping struct {
	kind   error
	status int
	code   dto.ErrorCode
}

// Checked in order; the first kind matching the error chain wins
var errorMappings = []errorMapping{
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrHasReference, http.StatusConflict, dto.ErrorCodeResourceReferenced},
	{apperrors.ErrInvalidField, http.StatusBadRequest, dto.ErrorCodeResourceInvalid},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest},
	{apperrors.ErrInvalidTeacher, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidTeacher},
	{apperrors.ErrInvalidGroup, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidGroup},
	{apperrors.ErrInvalidClassRoom, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidClassRoom},
}

// HandleAPIError handles common API errors and returns appropriate responses.
// Domain errors keep their message; anything unknown is logged and reported
// as an internal error without details.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			c.JSON(m.status, dto.NewErrorResponse(dto.NewErrorDetail(m.code, errorMessage(err))))
			return
		}
	}

	logger.FromContext(c.Request.Context()).Error().Err(err).
		Str("path", c.FullPath()).
		Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical),
	))
}

// errorMessage prefers the message of the innermost CustomError
func errorMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return err.Error()
}
