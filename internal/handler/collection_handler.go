package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/nmi/internal/logic"
	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	collectionLogic *logic.CollectionLogic
	nftLogic        *logic.NftLogic
}

func NewCollectionHandler(collectionLogic *logic.CollectionLogic, nftLogic *logic.NftLogic) *CollectionHandler {
	return &CollectionHandler{
		collectionLogic: collectionLogic,
		nftLogic:        nftLogic,
	}
}

// GetCollections 获取集合列表
func (h *CollectionHandler) GetCollections(c *gin.Context) {
	page, pageSize := pagination(c)

	collections, total, err := h.collectionLogic.GetCollections(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", PagedData{
		Items:    collections,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetCollection 获取单个集合详情
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	address := c.Param("address")

	collection, err := h.collectionLogic.GetCollection(address)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	if collection == nil {
		ErrorResponse(c, http.StatusNotFound, "集合不存在")
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", collection)
}

// GetCollectionNfts 获取集合下的NFT列表
func (h *CollectionHandler) GetCollectionNfts(c *gin.Context) {
	address := c.Param("address")
	page, pageSize := pagination(c)

	nfts, total, err := h.nftLogic.GetNftsByCollection(address, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", PagedData{
		Items:    nfts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// pagination 从查询参数解析分页
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
