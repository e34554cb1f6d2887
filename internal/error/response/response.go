package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
)

// Success writes {"success": true} merged with fields.
func Success(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func failureBody(errorCode int, message string) gin.H {
	if message == "" {
		message = code.GetMessage(errorCode)
	}
	return gin.H{
		"success": false,
		"code":    errorCode,
		"message": message,
	}
}

// Fail writes the failure envelope with the status and message of errorCode.
func Fail(c *gin.Context, errorCode int) {
	c.JSON(code.GetStatus(errorCode), failureBody(errorCode, ""))
}

// FailWithMessage is Fail with a custom message.
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), failureBody(errorCode, message))
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, errorCode int) {
	c.AbortWithStatusJSON(code.GetStatus(errorCode), failureBody(errorCode, ""))
}

// ServerError writes a 500. The error text is included only when exposeDetail
// is set, i.e. outside production.
func ServerError(c *gin.Context, err error, exposeDetail bool) {
	body := failureBody(code.ErrDatabase, "")
	if exposeDetail && err != nil {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
