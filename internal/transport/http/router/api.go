package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"products-api/internal/core/auth"
	"products-api/internal/transport/http/handler"
	mdw "products-api/internal/transport/http/middleware"
)

// AdminRole gates every /api/products route.
const AdminRole = "Admin"

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, products *handler.ProductHandler, users *handler.UserHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	user := api.Group("/user")
	{
		user.POST("/register", users.Register)
		user.POST("/add-role/:role", users.CreateRole)
		user.POST("/assign-role", users.AssignRole)
		user.POST("/login", users.Login)
	}

	prod := api.Group("/products")
	prod.Use(mdw.AuthJWT(jwter, AdminRole))
	{
		prod.GET("", products.GetAll)
		prod.GET("/:productId", products.GetByID)
		prod.POST("", products.Create)
		prod.PUT("/:productId", products.Update)
		prod.DELETE("/:productId", products.Delete)
		prod.PUT("/add-to-stock/:productId/:quantity", products.IncrementStock)
		prod.PUT("/decrement-stock/:productId/:quantity", products.DecrementStock)
	}

	return r
}
