package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/devopstile/internal/common"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a 500 envelope.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", RequestIDFrom(c)),
					zap.Stack("stack"),
				)
				common.Abort(c, http.StatusInternalServerError, 50001, "internal error")
			}
		}()
		c.Next()
	}
}
