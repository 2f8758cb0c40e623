package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Marketplace 市场标识
type Marketplace string

const (
	MarketplaceMrkt   Marketplace = "mrkt"
	MarketplacePallet Marketplace = "pallet"
)

// Listing 挂单模型，每个NFT至多一个活跃挂单
// 唯一性由删除后重建的写入纪律保证，而非数据库约束
type Listing struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	NftId             uint            `json:"nft_id" gorm:"not null;index"`
	CollectionAddress string          `json:"collection_address" gorm:"not null"`
	SellerAddress     string          `json:"seller_address" gorm:"not null"`
	Price             decimal.Decimal `json:"price" gorm:"type:numeric;not null"`
	Denom             string          `json:"denom" gorm:"not null"`
	TxHash            string          `json:"tx_hash" gorm:"not null"`
	CreatedDate       time.Time       `json:"created_date" gorm:"not null"`
	ExpirationTime    *int64          `json:"expiration_time"`
	Marketplace       Marketplace     `json:"marketplace" gorm:"not null"`

	// 关联
	Nft Nft `json:"nft,omitempty" gorm:"foreignKey:NftId"`
}
