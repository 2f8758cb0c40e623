package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/nmi/internal/logic"
	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	tracingLogic *logic.TracingLogic
}

func NewStreamHandler(tracingLogic *logic.TracingLogic) *StreamHandler {
	return &StreamHandler{tracingLogic: tracingLogic}
}

// GetStreamTxs 获取事件处理追踪记录，可按上下文和结果过滤
func (h *StreamHandler) GetStreamTxs(c *gin.Context) {
	context := c.Query("context")
	page, pageSize := pagination(c)

	var isFailure *bool
	if raw := c.Query("is_failure"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "无效的is_failure参数")
			return
		}
		isFailure = &parsed
	}

	streamTxs, total, err := h.tracingLogic.GetStreamTxs(context, isFailure, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", PagedData{
		Items:    streamTxs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
