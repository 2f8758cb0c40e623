package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/blues/nmi/internal/config"
	"github.com/blues/nmi/internal/cosmos"
	"github.com/blues/nmi/internal/logger"
	"github.com/blues/nmi/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

// CollectionSyncJob 集合发行量同步任务
// 定期用num_tokens链查询刷新已收录集合的supply
type CollectionSyncJob struct {
	collectionLogic *logic.CollectionLogic
	chain           *cosmos.Client
	interval        time.Duration
	poolSize        int
}

// NewCollectionSyncJob 创建集合同步任务
func NewCollectionSyncJob(collectionLogic *logic.CollectionLogic, chain *cosmos.Client, cfg config.TaskConfig) *CollectionSyncJob {
	interval := time.Duration(cfg.Interval) * time.Second
	if interval <= 0 {
		interval = time.Hour
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}

	return &CollectionSyncJob{
		collectionLogic: collectionLogic,
		chain:           chain,
		interval:        interval,
		poolSize:        poolSize,
	}
}

// GetName 任务名称
func (j *CollectionSyncJob) GetName() string {
	return "collection_sync_job"
}

// GetSchedule 任务调度
func (j *CollectionSyncJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务，在协程池上并发刷新各集合
func (j *CollectionSyncJob) Execute() {
	addresses, err := j.collectionLogic.GetAllAddresses()
	if err != nil {
		logger.Error("Failed to load collection addresses: %v", err)
		return
	}
	if len(addresses) == 0 {
		logger.Debug("No collections to sync")
		return
	}

	pool, err := ants.NewPool(j.poolSize)
	if err != nil {
		logger.Error("Failed to create sync pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, address := range addresses {
		address := address
		wg.Add(1)

		err := pool.Submit(func() {
			defer wg.Done()
			j.syncCollection(address)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit sync task for %s: %v", address, err)
		}
	}

	wg.Wait()
	logger.Info("Collection sync finished, %d collections", len(addresses))
}

// syncCollection 刷新单个集合的发行量
func (j *CollectionSyncJob) syncCollection(address string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	supply, err := j.chain.GetCw721ContractSupply(ctx, address)
	if err != nil {
		logger.Error("Failed to query supply for %s: %v", address, err)
		return
	}

	if err := j.collectionLogic.UpdateSupply(address, supply.Count); err != nil {
		logger.Error("Failed to update supply for %s: %v", address, err)
	}
}
