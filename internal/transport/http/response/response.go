package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message is the body of the plain 200/400 outcomes ("Product created
// successfully!" and friends).
type Message struct {
	Message string `json:"message"`
}

// ErrorBody is the 500 envelope: a stable message plus the raw error text,
// never a stack trace.
type ErrorBody struct {
	Message          string `json:"message"`
	ExceptionDetails string `json:"exceptionDetails,omitempty"`
}

func OK(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Message{Message: msg})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Message{Message: msg})
}

// Internal is the single infrastructure-failure boundary: any error that
// escapes a service call ends here as a 500 envelope.
func Internal(c *gin.Context, msg string, err error) {
	body := ErrorBody{Message: msg}
	if err != nil {
		body.ExceptionDetails = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
