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

// NftLogic NFT业务逻辑
type NftLogic struct {
	db              *gorm.DB
	chain           *cosmos.Client
	metadata        *metadata.Client
	collectionLogic *CollectionLogic
}

// NewNftLogic 创建NFT业务逻辑
func NewNftLogic(db *gorm.DB, chain *cosmos.Client, meta *metadata.Client, collectionLogic *CollectionLogic) *NftLogic {
	return &NftLogic{
		db:              db,
		chain:           chain,
		metadata:        meta,
		collectionLogic: collectionLogic,
	}
}

// CreateNftOrUpdateOwner 幂等的NFT写入：
// 已存在则只更新持有者（提供时）并返回id；不存在则从链上和链下
// 拉取元数据，按需创建所属集合，再冲突忽略地插入NFT及其属性。
// 同一键并发或重复调用不会产生重复行，持有者以最后一次写入为准。
func (l *NftLogic) CreateNftOrUpdateOwner(ctx context.Context, tokenAddress, tokenId string, owner *string) (uint, error) {
	nft, err := l.FindByAddressAndTokenId(tokenAddress, tokenId)
	if err != nil {
		return 0, err
	}

	if nft != nil {
		if owner != nil {
			if err := l.updateOwner(tokenAddress, tokenId, owner); err != nil {
				return 0, err
			}
		}
		return nft.ID, nil
	}

	info, err := l.chain.GetNftInfo(ctx, tokenAddress, tokenId)
	if err != nil {
		return 0, err
	}

	meta, err := l.metadata.GetNftMetadata(ctx, info.TokenUri)
	if err != nil {
		return 0, err
	}

	var royalty *decimal.Decimal
	if info.Extension != nil && info.Extension.RoyaltyPercentage != nil {
		d := decimal.NewFromFloat(*info.Extension.RoyaltyPercentage)
		royalty = &d
	}

	if err := l.collectionLogic.CreateCollectionIfNotExist(ctx, tokenAddress, royalty); err != nil {
		return 0, err
	}

	newNft := model.Nft{
		TokenAddress: tokenAddress,
		TokenId:      tokenId,
		TokenUri:     info.TokenUri,
		Name:         meta.Name,
		Image:        derefString(meta.Image),
		Description:  derefString(meta.Description),
		OwnerAddress: owner,
	}

	result := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_address"}, {Name: "token_id"}},
		DoNothing: true,
	}).Create(&newNft)
	if result.Error != nil {
		return 0, fmt.Errorf("创建NFT失败: %w", result.Error)
	}

	// 冲突时插入被忽略，说明并发方已创建，重新查询拿到已有行
	if result.RowsAffected == 0 {
		existing, err := l.FindByAddressAndTokenId(tokenAddress, tokenId)
		if err != nil {
			return 0, err
		}
		if existing == nil {
			return 0, fmt.Errorf("NFT插入冲突后查询不到记录 %s/%s", tokenAddress, tokenId)
		}
		if owner != nil {
			if err := l.updateOwner(tokenAddress, tokenId, owner); err != nil {
				return 0, err
			}
		}
		return existing.ID, nil
	}

	if err := l.createTraits(newNft.ID, meta.Attributes); err != nil {
		return 0, err
	}

	return newNft.ID, nil
}

// FindByAddressAndTokenId 按唯一键查找NFT，不存在时返回nil
func (l *NftLogic) FindByAddressAndTokenId(tokenAddress, tokenId string) (*model.Nft, error) {
	var nft model.Nft
	err := l.db.Where("token_address = ? AND token_id = ?", tokenAddress, tokenId).First(&nft).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询NFT失败: %w", err)
	}
	return &nft, nil
}

// GetNft 按id获取NFT详情，带属性
func (l *NftLogic) GetNft(id uint) (*model.Nft, error) {
	var nft model.Nft
	if err := l.db.Preload("Traits").First(&nft, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("获取NFT失败: %w", err)
	}
	return &nft, nil
}

// GetNftsByCollection 分页获取集合下的NFT
func (l *NftLogic) GetNftsByCollection(address string, page, pageSize int) ([]model.Nft, int64, error) {
	var nfts []model.Nft
	var total int64

	query := l.db.Model(&model.Nft{}).Where("token_address = ?", address)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取NFT总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("id ASC").Find(&nfts).Error; err != nil {
		return nil, 0, fmt.Errorf("获取NFT列表失败: %w", err)
	}

	return nfts, total, nil
}

func (l *NftLogic) updateOwner(tokenAddress, tokenId string, owner *string) error {
	err := l.db.Model(&model.Nft{}).
		Where("token_address = ? AND token_id = ?", tokenAddress, tokenId).
		Update("owner_address", owner).Error
	if err != nil {
		return fmt.Errorf("更新NFT持有者失败: %w", err)
	}
	return nil
}

func (l *NftLogic) createTraits(nftId uint, attributes []metadata.NftMetadataAttribute) error {
	if len(attributes) == 0 {
		return nil
	}

	traits := make([]model.NftTrait, 0, len(attributes))
	for _, attr := range attributes {
		name := "unknown"
		if attr.TraitType != nil {
			name = *attr.TraitType
		} else if attr.Type != nil {
			name = *attr.Type
		}

		value := "unknown"
		if attr.Value != nil {
			value = attr.Value.String()
		}

		var displayType *string
		if attr.DisplayType != nil && attr.DisplayType.String() != "" {
			s := attr.DisplayType.String()
			displayType = &s
		}

		traits = append(traits, model.NftTrait{
			NftId:       nftId,
			Attribute:   name,
			Value:       value,
			DisplayType: displayType,
		})
	}

	if err := l.db.Create(&traits).Error; err != nil {
		return fmt.Errorf("创建NFT属性失败: %w", err)
	}
	return nil
}
