package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marceelkacz03/lola-crm/pkg/errors"
)

// ErrorBody is the envelope every failing endpoint returns.
type ErrorBody struct {
	Error string `json:"error"`
}

// RespondWithJSON sends data as-is with the given status.
func RespondWithJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// RespondWithError maps an error to its HTTP status and the {error: message}
// envelope. Unknown error types surface as 500 without leaking details.
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	if appErr, ok := err.(*errors.AppError); ok {
		statusCode = appErr.StatusCode()
		message = appErr.Message
	}

	c.JSON(statusCode, ErrorBody{Error: message})
}
