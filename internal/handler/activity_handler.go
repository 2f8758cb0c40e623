package handler

import (
	"net/http"

	"github.com/blues/nmi/internal/logic"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityLogic *logic.ActivityLogic
}

func NewActivityHandler(activityLogic *logic.ActivityLogic) *ActivityHandler {
	return &ActivityHandler{activityLogic: activityLogic}
}

// GetActivities 获取活动流水，可按类型和市场过滤
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	kind := c.Query("kind")
	marketplace := c.Query("marketplace")
	page, pageSize := pagination(c)

	activities, total, err := h.activityLogic.GetActivities(kind, marketplace, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", PagedData{
		Items:    activities,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
