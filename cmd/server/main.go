package main

import (
	"context"
	"time"

	"github.com/blues/nmi/internal/config"
	"github.com/blues/nmi/internal/cosmos"
	"github.com/blues/nmi/internal/logger"
	"github.com/blues/nmi/internal/logic"
	"github.com/blues/nmi/internal/metadata"
	"github.com/blues/nmi/internal/repository"
	"github.com/blues/nmi/internal/router"
	"github.com/blues/nmi/internal/scheduler"
	"github.com/blues/nmi/internal/stream"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log); err != nil {
		logger.Fatal("Failed to setup logger: %v", err)
	}
	defer logger.Sync()

	// 没有市场合约地址拍卖流无从订阅，尽早失败
	if cfg.Chain.PalletAddress == "" {
		logger.Fatal("chain.pallet_address is required")
	}

	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化链查询客户端
	chainClient, err := cosmos.Init(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize chain client: %v", err)
	}

	// 初始化链下元数据客户端
	metaClient := metadata.Init(cfg.Metadata)

	// 业务逻辑
	collectionLogic := logic.NewCollectionLogic(db, chainClient, metaClient)
	nftLogic := logic.NewNftLogic(db, chainClient, metaClient, collectionLogic)
	listingLogic := logic.NewListingLogic(db)
	activityLogic := logic.NewActivityLogic(db)
	tracingLogic := logic.NewTracingLogic(db)

	workerCfg := stream.WorkerConfig{
		ReconnectBase: time.Duration(cfg.Stream.ReconnectBase) * time.Second,
		ReconnectMax:  time.Duration(cfg.Stream.ReconnectMax) * time.Second,
	}

	ctx := context.Background()

	// cw721流：token转移方言
	cw721Query := stream.NewTxQuery().
		AndExists("wasm.action").
		AndExists("wasm._contract_address").
		AndExists("wasm.token_id")
	cw721Worker := stream.NewWorker(
		"cw721",
		stream.NewSubscriber(cfg.Chain.WsUrl, cw721Query),
		stream.NewCw721Classifier(),
		stream.NewCw721Processor(nftLogic),
		tracingLogic,
		workerCfg,
	)
	go cw721Worker.Run(ctx)

	// pallet流：拍卖方言，挂单生命周期只归这条流
	palletQuery := stream.NewTxQuery().
		AndEq("execute._contract_address", cfg.Chain.PalletAddress)
	palletWorker := stream.NewWorker(
		"pallet",
		stream.NewSubscriber(cfg.Chain.WsUrl, palletQuery),
		stream.NewAuctionClassifier(),
		stream.NewAuctionProcessor(nftLogic, listingLogic, chainClient, cfg.Chain.PalletAddress),
		tracingLogic,
		workerCfg,
	)
	go palletWorker.Run(ctx)

	// 启动定时任务
	scheduler.Start(collectionLogic, chainClient, cfg)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由并启动服务器
	r := router.Setup(router.Logics{
		Collection: collectionLogic,
		Nft:        nftLogic,
		Listing:    listingLogic,
		Activity:   activityLogic,
		Tracing:    tracingLogic,
	})

	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
