package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityKind 活动类型
type ActivityKind string

const (
	ActivityKindList   ActivityKind = "list"
	ActivityKindDelist ActivityKind = "delist"
	ActivityKindSale   ActivityKind = "sale"
)

// NftActivity NFT活动流水，只追加不修改
type NftActivity struct {
	ID uint `json:"id" gorm:"primaryKey"`

	NftId         uint            `json:"nft_id" gorm:"not null;index"`
	EventKind     ActivityKind    `json:"event_kind" gorm:"not null"`
	Marketplace   Marketplace     `json:"marketplace" gorm:"not null"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric;not null"`
	Denom         string          `json:"denom" gorm:"not null"`
	SellerAddress *string         `json:"seller_address"`
	BuyerAddress  *string         `json:"buyer_address"`
	TxHash        string          `json:"tx_hash" gorm:"not null"`
	CreatedDate   time.Time       `json:"created_date" gorm:"not null;index"`
	Metadata      string          `json:"metadata" gorm:"type:jsonb;default:'{}'"`
}
