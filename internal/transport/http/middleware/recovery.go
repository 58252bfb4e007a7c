package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"products-api/internal/transport/http/response"
)

// Recovery keeps panics away from the transport layer: the caller gets the
// standard 500 envelope, the stack goes to the log only.
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorBody{
						Message:          "An unexpected error occurred.",
						ExceptionDetails: fmt.Sprint(rec),
					})
				}
			}
		}()
		c.Next()
	}
}
