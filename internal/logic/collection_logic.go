package logic

import (
	"context"
	"fmt"

	"github.com/blues/nmi/internal/cosmos"
	"github.com/blues/nmi/internal/metadata"
	"github.com/blues/nmi/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionLogic 集合业务逻辑
type CollectionLogic struct {
	db       *gorm.DB
	chain    *cosmos.Client
	metadata *metadata.Client
}

// NewCollectionLogic 创建集合业务逻辑
func NewCollectionLogic(db *gorm.DB, chain *cosmos.Client, meta *metadata.Client) *CollectionLogic {
	return &CollectionLogic{db: db, chain: chain, metadata: meta}
}

// CreateCollectionIfNotExist 首次发现集合时创建，已存在则直接返回
// 插入使用冲突忽略，重放和并发不会产生唯一键错误
func (l *CollectionLogic) CreateCollectionIfNotExist(ctx context.Context, address string, royalty *decimal.Decimal) error {
	var count int64
	if err := l.db.Model(&model.Collection{}).Where("address = ?", address).Count(&count).Error; err != nil {
		return fmt.Errorf("查询集合失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	meta, err := l.metadata.GetCollectionMetadata(ctx, address)
	if err != nil {
		return err
	}

	supply, err := l.chain.GetCw721ContractSupply(ctx, address)
	if err != nil {
		return err
	}

	info, err := l.chain.GetCw721ContractInfo(ctx, address)
	if err != nil {
		return err
	}

	collection := model.Collection{
		Address:     address,
		Name:        info.Name,
		Symbol:      info.Symbol,
		Supply:      supply.Count,
		Description: derefString(meta.Description),
		Image:       derefString(meta.Pfp),
		Banner:      derefString(meta.Banner),
		Royalty:     royalty,
	}
	if len(meta.Socials) > 0 {
		collection.Socials = string(meta.Socials)
	} else {
		collection.Socials = "[]"
	}

	if err := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&collection).Error; err != nil {
		return fmt.Errorf("创建集合失败: %w", err)
	}

	return nil
}

// GetCollection 按地址获取集合
func (l *CollectionLogic) GetCollection(address string) (*model.Collection, error) {
	var collection model.Collection
	if err := l.db.Where("address = ?", address).First(&collection).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("获取集合失败: %w", err)
	}
	return &collection, nil
}

// GetCollections 分页获取集合列表
func (l *CollectionLogic) GetCollections(page, pageSize int) ([]model.Collection, int64, error) {
	var collections []model.Collection
	var total int64

	if err := l.db.Model(&model.Collection{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取集合总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := l.db.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&collections).Error; err != nil {
		return nil, 0, fmt.Errorf("获取集合列表失败: %w", err)
	}

	return collections, total, nil
}

// GetAllAddresses 获取所有集合地址
func (l *CollectionLogic) GetAllAddresses() ([]string, error) {
	var addresses []string
	if err := l.db.Model(&model.Collection{}).Pluck("address", &addresses).Error; err != nil {
		return nil, fmt.Errorf("获取集合地址失败: %w", err)
	}
	return addresses, nil
}

// UpdateSupply 更新集合发行量
func (l *CollectionLogic) UpdateSupply(address string, supply int32) error {
	if err := l.db.Model(&model.Collection{}).Where("address = ?", address).Update("supply", supply).Error; err != nil {
		return fmt.Errorf("更新集合发行量失败: %w", err)
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
