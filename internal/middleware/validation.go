package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/models/dto/enums"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// InvalidBodyMessage is returned when the body is not the expected JSON shape
const InvalidBodyMessage = "invalid request body"

// BindJSON decodes the request body into obj and runs its binding rules.
// A missing body or a failed `required` rule answers 400 with requiredMsg;
// malformed JSON answers 400 with InvalidBodyMessage. It reports whether the
// handler should continue.
func BindJSON(c *gin.Context, obj interface{}, requiredMsg string) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, io.EOF), errors.As(err, &verrs):
		if len(verrs) > 0 {
			logger.Debug().
				Str("code", string(enums.ErrorCodeValidationFailed)).
				Strs("fields", failedFields(verrs)).
				Msg("Request failed validation")
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(requiredMsg))
	default:
		logger.Debug().
			Err(err).
			Str("code", string(enums.ErrorCodeInvalidRequest)).
			Msg("Malformed request body")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(InvalidBodyMessage))
	}
	return false
}

// failedFields lists "field:tag" for each failed rule
func failedFields(verrs validator.ValidationErrors) []string {
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, e.Field()+":"+e.Tag())
	}
	return out
}
