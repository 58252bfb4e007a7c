package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"products-api/internal/transport/http/response"
)

// ConcurrencyLimit caps in-flight requests to protect the stores downstream.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c, 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Message{Message: "server busy"})
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
