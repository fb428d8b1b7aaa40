package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/models/dto/enums"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// NotFoundMessage is the body of every unmatched route
const NotFoundMessage = "Not found"

// HandleAPIError writes the response for an error returned by a service.
// Validation errors become 400 with their own message. Everything else is a
// store failure: the cause is logged and the client gets 500 with fallback.
func HandleAPIError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(apperrors.MessageOf(err, "Validation failed")))
		return
	default:
		code := enums.ErrorCodeInternalServer
		if apperrors.Is(err, apperrors.ErrRetrievalFailed, apperrors.ErrWriteFailed) {
			code = enums.ErrorCodeDatabaseError
		}
		logger.Error().
			Err(err).
			Str("code", string(code)).
			Str("requestID", RequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg(fallback)
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(fallback))
		return
	}
}

// NotFound answers unmatched paths and methods
func NotFound(c *gin.Context) {
	logger.Debug().
		Str("code", string(enums.ErrorCodeResourceNotFound)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("No route")
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(NotFoundMessage))
}
