package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/devopstile/internal/assistant"
	"github.com/suPer8Hu/devopstile/internal/chat"
	"github.com/suPer8Hu/devopstile/internal/common"
	"github.com/suPer8Hu/devopstile/internal/session"
	"github.com/suPer8Hu/devopstile/internal/store/redisstore"
	"go.uber.org/zap"
)

const maxIdempotencyKeyLen = 128

func (h *Handler) store(c *gin.Context) (*chat.Store, bool) {
	st, err := h.Sessions.Get(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
			return nil, false
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return nil, false
	}
	return st, true
}

func sessionView(id string, st *chat.Store) gin.H {
	return gin.H{
		"session_id": id,
		"active":     st.Active(),
		"faqs":       st.FAQs(),
		"history":    st.History(),
	}
}

func (h *Handler) StartSession(c *gin.Context) {
	id, st, err := h.Sessions.Start()
	if err != nil {
		h.Log.Error("start session", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to start session")
		return
	}
	common.OK(c, sessionView(id, st))
}

func (h *Handler) EndSession(c *gin.Context) {
	sid := c.Param("session_id")
	if err := h.Sessions.End(sid); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40401, "session not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.OK(c, gin.H{"session_id": sid, "ended": true})
}

func (h *Handler) GetSession(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	common.OK(c, sessionView(c.Param("session_id"), st))
}

func (h *Handler) CreateConversation(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	common.OK(c, gin.H{"conversation": st.CreateConversation()})
}

func (h *Handler) ListConversations(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	common.OK(c, gin.H{
		"active_id":     st.Active().ID,
		"conversations": st.History(),
	})
}

// SelectConversation never fails on an unknown id: the active
// conversation stays as it was and "selected" is false.
func (h *Handler) SelectConversation(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	selected := st.SelectConversation(c.Param("conversation_id"))
	common.OK(c, gin.H{
		"selected": selected,
		"active":   st.Active(),
	})
}

func (h *Handler) ListConversationMessages(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	conv, found := st.Conversation(c.Param("conversation_id"))
	if !found {
		common.Fail(c, http.StatusNotFound, 40403, "conversation not found")
		return
	}
	common.OK(c, gin.H{
		"conversation_id": conv.ID,
		"title":           conv.Title,
		"messages":        conv.Messages,
		"pending_replies": st.Pending(conv.ID),
	})
}

type sendMessageReq struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	sid := c.Param("session_id")

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.Image) == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "text or image required")
		return
	}

	idempoKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(idempoKey) > maxIdempotencyKeyLen {
		common.Fail(c, http.StatusBadRequest, 10003, "idempotency key too long")
		return
	}

	reserved := false
	if h.Idem != nil && idempoKey != "" {
		ctx := c.Request.Context()
		fresh, err := h.Idem.Reserve(ctx, sid, idempoKey, h.IdemTTL)
		switch {
		case err != nil:
			// fail open: a broken cache must not block chatting
			h.Log.Warn("idempotency reserve failed", zap.String("session_id", sid), zap.Error(err))
		case !fresh:
			msgID, lerr := h.Idem.Lookup(ctx, sid, idempoKey)
			if errors.Is(lerr, redisstore.ErrNoValue) {
				common.Fail(c, http.StatusConflict, 40901, "request already in progress")
				return
			}
			if lerr == nil {
				common.OK(c, gin.H{"duplicate": true, "message_id": msgID})
				return
			}
			h.Log.Warn("idempotency lookup failed", zap.String("session_id", sid), zap.Error(lerr))
		default:
			reserved = true
		}
	}

	msg := st.AppendUserMessage(req.Text, req.Image)
	active := st.Active()

	if reserved {
		if err := h.Idem.Remember(c.Request.Context(), sid, idempoKey, msg.ID); err != nil {
			h.Log.Warn("idempotency remember failed", zap.String("session_id", sid), zap.Error(err))
		}
	}

	common.OK(c, gin.H{
		"conversation_id": active.ID,
		"title":           active.Title,
		"message":         msg,
		"faqs":            st.FAQs(),
		"pending_replies": st.Pending(active.ID),
	})
}

func (h *Handler) SessionFAQs(c *gin.Context) {
	st, ok := h.store(c)
	if !ok {
		return
	}
	common.OK(c, gin.H{"faqs": st.FAQs()})
}

func (h *Handler) QueryFAQs(c *gin.Context) {
	common.OK(c, gin.H{"faqs": assistant.SelectFAQ(c.Query("q"))})
}
