package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovalhall/meeting-scheduler-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON body for every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes an error reply. AppError values carry their own HTTP status;
// anything else is treated as an internal failure and hidden behind a 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
