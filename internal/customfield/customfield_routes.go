package customfield

import (
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	fields := r.Group("/custom-fields")
	fields.Use(middleware.AuthMiddleware())
	fields.Use(middleware.ContextLogger(logger))
	{
		fields.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)

		fields.POST("",
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)

		fields.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			handler.Delete,
		)
	}
}
