package i18n

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends the error envelope for the given error. The
// body carries a "detail" field, matching what the console extracts.
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	detail := TranslateError(c, err)

	var errWithCode *ErrorWithCode
	if errors.As(err, &errWithCode) {
		statusCode = int(errWithCode.GetCode())
	}

	c.JSON(statusCode, gin.H{"detail": detail})
}

// RespondWithSuccess sends a success response with a localized message
// merged with the payload.
func RespondWithSuccess(c *gin.Context, statusCode int, msgID string, payload interface{}) {
	if payload != nil {
		c.JSON(statusCode, payload)
		return
	}
	c.JSON(statusCode, gin.H{"message": TranslateMessage(c, msgID, nil)})
}
