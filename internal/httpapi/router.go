package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/devopstile/internal/common"
	"github.com/suPer8Hu/devopstile/internal/httpapi/handlers"
	"github.com/suPer8Hu/devopstile/internal/httpapi/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *handlers.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(log))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))

	r.GET("/ping", h.Ping)

	// DevOps assistant
	r.GET("/faqs", h.QueryFAQs)
	r.POST("/sessions", h.StartSession)
	s := r.Group("/sessions/:session_id")
	s.GET("", h.GetSession)
	s.DELETE("", h.EndSession)
	s.GET("/faqs", h.SessionFAQs)
	s.POST("/messages", h.SendMessage)
	s.POST("/conversations", h.CreateConversation)
	s.GET("/conversations", h.ListConversations)
	s.POST("/conversations/:conversation_id/select", h.SelectConversation)
	s.GET("/conversations/:conversation_id/messages", h.ListConversationMessages)

	// IaC translator
	r.GET("/translate/formats", h.ListFormats)
	r.POST("/translate", h.Translate)
	r.POST("/translate/jobs", h.CreateTranslateJob)
	r.GET("/translate/jobs/:job_id", h.GetTranslateJob)

	return r
}
