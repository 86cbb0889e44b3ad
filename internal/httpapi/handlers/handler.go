package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/devopstile/internal/common"
	"github.com/suPer8Hu/devopstile/internal/session"
	"github.com/suPer8Hu/devopstile/internal/translator"
	"go.uber.org/zap"
)

// Idempotency de-duplicates requests carrying an Idempotency-Key header.
// It is satisfied by redisstore.Store.
type Idempotency interface {
	Reserve(ctx context.Context, scope, key string, ttl time.Duration) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Lookup(ctx context.Context, scope, key string) (string, error)
}

type Handler struct {
	Sessions   *session.Manager
	Translator *translator.Service
	Jobs       translator.JobQueue

	// Idem is optional; nil disables Idempotency-Key handling for chat.
	Idem    Idempotency
	IdemTTL time.Duration

	Log *zap.Logger
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true, "sessions": h.Sessions.Len()})
}
