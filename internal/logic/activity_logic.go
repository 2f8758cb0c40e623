package logic

import (
	"fmt"

	"github.com/blues/nmi/internal/model"
	"gorm.io/gorm"
)

// ActivityLogic 活动流水业务逻辑（只读，写入由ListingLogic随事务完成）
type ActivityLogic struct {
	db *gorm.DB
}

// NewActivityLogic 创建活动流水业务逻辑
func NewActivityLogic(db *gorm.DB) *ActivityLogic {
	return &ActivityLogic{db: db}
}

// GetActivities 分页获取活动流水，可按类型和市场过滤
func (l *ActivityLogic) GetActivities(kind, marketplace string, page, pageSize int) ([]model.NftActivity, int64, error) {
	var activities []model.NftActivity
	var total int64

	query := l.db.Model(&model.NftActivity{})
	if kind != "" {
		query = query.Where("event_kind = ?", kind)
	}
	if marketplace != "" {
		query = query.Where("marketplace = ?", marketplace)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_date DESC").Find(&activities).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动列表失败: %w", err)
	}

	return activities, total, nil
}

// GetNftActivities 分页获取单个NFT的活动流水
func (l *ActivityLogic) GetNftActivities(nftId uint, page, pageSize int) ([]model.NftActivity, int64, error) {
	var activities []model.NftActivity
	var total int64

	query := l.db.Model(&model.NftActivity{}).Where("nft_id = ?", nftId)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_date DESC").Find(&activities).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动列表失败: %w", err)
	}

	return activities, total, nil
}
