package router

import (
	"github.com/blues/nmi/internal/handler"
	"github.com/blues/nmi/internal/logic"
	"github.com/gin-gonic/gin"
)

// Logics 路由依赖的业务逻辑集合
type Logics struct {
	Collection *logic.CollectionLogic
	Nft        *logic.NftLogic
	Listing    *logic.ListingLogic
	Activity   *logic.ActivityLogic
	Tracing    *logic.TracingLogic
}

func Setup(logics Logics) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "nft-marketplace-indexer",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		collectionHandler := handler.NewCollectionHandler(logics.Collection, logics.Nft)
		collections := v1.Group("/collections")
		{
			collections.GET("", collectionHandler.GetCollections)
			collections.GET("/:address", collectionHandler.GetCollection)
			collections.GET("/:address/nfts", collectionHandler.GetCollectionNfts)
		}

		nftHandler := handler.NewNftHandler(logics.Nft, logics.Listing, logics.Activity)
		nfts := v1.Group("/nfts")
		{
			nfts.GET("/:id", nftHandler.GetNft)
			nfts.GET("/:id/activities", nftHandler.GetNftActivities)
		}

		activityHandler := handler.NewActivityHandler(logics.Activity)
		v1.GET("/activities", activityHandler.GetActivities)

		streamHandler := handler.NewStreamHandler(logics.Tracing)
		v1.GET("/stream/txs", streamHandler.GetStreamTxs)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
