package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/devopstile/internal/common"
	"github.com/suPer8Hu/devopstile/internal/translator"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type translateReq struct {
	SourceCode   string `json:"source_code"`
	SourceFormat string `json:"source_format"`
	TargetFormat string `json:"target_format"`
}

// bindTranslate decodes the body and resolves both formats; on failure the
// response has already been written.
func bindTranslate(c *gin.Context) (translateReq, translator.Format, translator.Format, bool) {
	var req translateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return req, "", "", false
	}
	if req.SourceFormat == "" || req.TargetFormat == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "source_format and target_format required")
		return req, "", "", false
	}
	src, err := translator.ParseFormat(req.SourceFormat)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10004, "unknown source_format")
		return req, "", "", false
	}
	dst, err := translator.ParseFormat(req.TargetFormat)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10004, "unknown target_format")
		return req, "", "", false
	}
	return req, src, dst, true
}

func (h *Handler) ListFormats(c *gin.Context) {
	formats := make([]gin.H, 0, len(translator.Formats()))
	for _, f := range translator.Formats() {
		formats = append(formats, gin.H{"id": f, "label": f.Label()})
	}
	pairs := make([]gin.H, 0)
	for _, k := range h.Translator.Table().Pairs() {
		pairs = append(pairs, gin.H{"source": k.Source, "target": k.Target})
	}
	common.OK(c, gin.H{"formats": formats, "pairs": pairs})
}

func (h *Handler) Translate(c *gin.Context) {
	req, src, dst, ok := bindTranslate(c)
	if !ok {
		return
	}

	out, err := h.Translator.Translate(c.Request.Context(), req.SourceCode, src, dst)
	if err != nil {
		// client went away during the simulated delay
		h.Log.Debug("translate aborted", zap.Error(err))
		common.Fail(c, http.StatusServiceUnavailable, 50003, "translation aborted")
		return
	}

	common.OK(c, gin.H{
		"source_format": src,
		"target_format": dst,
		"translated":    out,
	})
}

func (h *Handler) CreateTranslateJob(c *gin.Context) {
	req, src, dst, ok := bindTranslate(c)
	if !ok {
		return
	}

	idempoKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(idempoKey) > maxIdempotencyKeyLen {
		common.Fail(c, http.StatusBadRequest, 10003, "idempotency key too long")
		return
	}
	var idempoKeyPtr *string
	if idempoKey != "" {
		idempoKeyPtr = &idempoKey
	}

	ctx := c.Request.Context()
	j, created, err := h.Translator.CreateJob(ctx, req.SourceCode, src, dst, idempoKeyPtr)
	if err != nil {
		h.Log.Error("create translate job", zap.String("key", idempoKey), zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	// Enqueue only when a new job was created
	if created {
		if err := h.Jobs.PublishJob(ctx, j.ID); err != nil {
			h.Log.Error("publish translate job", zap.String("job_id", j.ID), zap.Error(err))
			common.Fail(c, http.StatusInternalServerError, 50002, "enqueue failed")
			return
		}
	}

	common.OK(c, gin.H{"job_id": j.ID, "status": j.Status, "created": created})
}

func (h *Handler) GetTranslateJob(c *gin.Context) {
	jobID := c.Param("job_id")
	j, err := h.Translator.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.OK(c, gin.H{"job": j})
}
