package logic

import (
	"fmt"
	"time"

	"github.com/blues/nmi/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListingLogic 挂单业务逻辑，负责挂单生命周期和相关活动流水的原子写入
type ListingLogic struct {
	db *gorm.DB
}

// NewListingLogic 创建挂单业务逻辑
func NewListingLogic(db *gorm.DB) *ListingLogic {
	return &ListingLogic{db: db}
}

// CreateListingParams 创建挂单参数
type CreateListingParams struct {
	NftId             uint
	CollectionAddress string
	SellerAddress     string
	Price             decimal.Decimal
	Denom             string
	TxHash            string
	CreatedDate       time.Time
	ExpirationTime    *int64
	Marketplace       model.Marketplace
}

// FindListingByNftId 查询NFT当前挂单，不存在时返回nil
func (l *ListingLogic) FindListingByNftId(nftId uint) (*model.Listing, error) {
	var listing model.Listing
	err := l.db.Where("nft_id = ?", nftId).First(&listing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("查询挂单失败: %w", err)
	}
	return &listing, nil
}

// CreateListing 创建挂单并写入list活动，同一事务提交
func (l *ListingLogic) CreateListing(params CreateListingParams) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		listing := model.Listing{
			NftId:             params.NftId,
			CollectionAddress: params.CollectionAddress,
			SellerAddress:     params.SellerAddress,
			Price:             params.Price,
			Denom:             params.Denom,
			TxHash:            params.TxHash,
			CreatedDate:       params.CreatedDate,
			ExpirationTime:    params.ExpirationTime,
			Marketplace:       params.Marketplace,
		}
		if err := tx.Create(&listing).Error; err != nil {
			return fmt.Errorf("创建挂单失败: %w", err)
		}

		seller := params.SellerAddress
		activity := model.NftActivity{
			NftId:         params.NftId,
			EventKind:     model.ActivityKindList,
			Marketplace:   params.Marketplace,
			Price:         params.Price,
			Denom:         params.Denom,
			SellerAddress: &seller,
			TxHash:        params.TxHash,
			CreatedDate:   params.CreatedDate,
			Metadata:      "{}",
		}
		if err := tx.Create(&activity).Error; err != nil {
			return fmt.Errorf("创建list活动失败: %w", err)
		}

		return nil
	})
}

// CancelListing 删除挂单并写入delist活动，同一事务提交
func (l *ListingLogic) CancelListing(listing *model.Listing, txHash string, date time.Time) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("nft_id = ?", listing.NftId).Delete(&model.Listing{}).Error; err != nil {
			return fmt.Errorf("删除挂单失败: %w", err)
		}

		seller := listing.SellerAddress
		activity := model.NftActivity{
			NftId:         listing.NftId,
			EventKind:     model.ActivityKindDelist,
			Marketplace:   listing.Marketplace,
			Price:         listing.Price,
			Denom:         listing.Denom,
			SellerAddress: &seller,
			TxHash:        txHash,
			CreatedDate:   date,
			Metadata:      "{}",
		}
		if err := tx.Create(&activity).Error; err != nil {
			return fmt.Errorf("创建delist活动失败: %w", err)
		}

		return nil
	})
}

// CompleteSale 成交：删除挂单、写入sale活动和成交记录，全部同一事务提交
func (l *ListingLogic) CompleteSale(listing *model.Listing, buyer, txHash string, date time.Time) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("nft_id = ?", listing.NftId).Delete(&model.Listing{}).Error; err != nil {
			return fmt.Errorf("删除挂单失败: %w", err)
		}

		seller := listing.SellerAddress
		buyerAddr := buyer
		activity := model.NftActivity{
			NftId:         listing.NftId,
			EventKind:     model.ActivityKindSale,
			Marketplace:   listing.Marketplace,
			Price:         listing.Price,
			Denom:         listing.Denom,
			SellerAddress: &seller,
			BuyerAddress:  &buyerAddr,
			TxHash:        txHash,
			CreatedDate:   date,
			Metadata:      "{}",
		}
		if err := tx.Create(&activity).Error; err != nil {
			return fmt.Errorf("创建sale活动失败: %w", err)
		}

		transaction := model.Transaction{
			TxHash:            txHash,
			CollectionAddress: listing.CollectionAddress,
			BuyerAddress:      buyer,
			SellerAddress:     listing.SellerAddress,
			Volume:            listing.Price,
			Market:            listing.Marketplace,
			Date:              date,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return fmt.Errorf("创建成交记录失败: %w", err)
		}

		return nil
	})
}
