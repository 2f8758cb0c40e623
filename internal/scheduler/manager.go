package scheduler

import (
	"github.com/blues/nmi/internal/config"
	"github.com/blues/nmi/internal/cosmos"
	"github.com/blues/nmi/internal/logger"
	"github.com/blues/nmi/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: s,
		config:    cfg,
	}, nil
}

// Start 启动任务管理器
func Start(collectionLogic *logic.CollectionLogic, chain *cosmos.Client, cfg *config.Config) {
	manager, err := NewManager(cfg)
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	// 注册所有任务
	manager.RegisterCollectionSyncJob(collectionLogic, chain)

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
}

// RegisterCollectionSyncJob 注册集合发行量同步任务
func (m *Manager) RegisterCollectionSyncJob(collectionLogic *logic.CollectionLogic, chain *cosmos.Client) {
	job := NewCollectionSyncJob(collectionLogic, chain, m.config.Task)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
