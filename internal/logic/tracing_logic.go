package logic

import (
	"fmt"
	"time"

	"github.com/blues/nmi/internal/model"
	"gorm.io/gorm"
)

// TracingLogic 事件处理追踪业务逻辑
type TracingLogic struct {
	db *gorm.DB
}

// NewTracingLogic 创建追踪业务逻辑
func NewTracingLogic(db *gorm.DB) *TracingLogic {
	return &TracingLogic{db: db}
}

// CreateStreamTxParams 追踪记录参数
type CreateStreamTxParams struct {
	TxHash    string
	Action    string
	Context   model.StreamContext
	Date      time.Time
	IsFailure bool
	Message   *string
	Event     string
}

// CreateStreamTx 写入一条追踪记录
func (l *TracingLogic) CreateStreamTx(params CreateStreamTxParams) error {
	event := params.Event
	if event == "" {
		event = "{}"
	}

	streamTx := model.StreamTx{
		TxHash:    params.TxHash,
		Action:    params.Action,
		Context:   params.Context,
		Date:      params.Date,
		IsFailure: params.IsFailure,
		Message:   params.Message,
		Event:     event,
	}

	if err := l.db.Create(&streamTx).Error; err != nil {
		return fmt.Errorf("创建追踪记录失败: %w", err)
	}
	return nil
}

// GetStreamTxs 分页获取追踪记录，可按上下文和结果过滤
func (l *TracingLogic) GetStreamTxs(context string, isFailure *bool, page, pageSize int) ([]model.StreamTx, int64, error) {
	var streamTxs []model.StreamTx
	var total int64

	query := l.db.Model(&model.StreamTx{})
	if context != "" {
		query = query.Where("context = ?", context)
	}
	if isFailure != nil {
		query = query.Where("is_failure = ?", *isFailure)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取追踪总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("date DESC").Find(&streamTxs).Error; err != nil {
		return nil, 0, fmt.Errorf("获取追踪列表失败: %w", err)
	}

	return streamTxs, total, nil
}
