package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/nmi/internal/logic"
	"github.com/gin-gonic/gin"
)

type NftHandler struct {
	nftLogic      *logic.NftLogic
	listingLogic  *logic.ListingLogic
	activityLogic *logic.ActivityLogic
}

func NewNftHandler(nftLogic *logic.NftLogic, listingLogic *logic.ListingLogic, activityLogic *logic.ActivityLogic) *NftHandler {
	return &NftHandler{
		nftLogic:      nftLogic,
		listingLogic:  listingLogic,
		activityLogic: activityLogic,
	}
}

// GetNft 获取NFT详情，带属性和当前挂单
func (h *NftHandler) GetNft(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的NFT ID")
		return
	}

	nft, err := h.nftLogic.GetNft(uint(id))
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if nft == nil {
		ErrorResponse(c, http.StatusNotFound, "NFT不存在")
		return
	}

	listing, err := h.listingLogic.FindListingByNftId(nft.ID)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", gin.H{
		"nft":     nft,
		"listing": listing,
	})
}

// GetNftActivities 获取NFT活动流水
func (h *NftHandler) GetNftActivities(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的NFT ID")
		return
	}
	page, pageSize := pagination(c)

	activities, total, err := h.activityLogic.GetNftActivities(uint(id), page, pageSize)
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
