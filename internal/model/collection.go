package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collection NFT集合模型，地址为主键，只在首次发现时创建
type Collection struct {
	Address   string    `json:"address" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 链上合约信息
	Name   string `json:"name" gorm:"not null"`
	Symbol string `json:"symbol" gorm:"not null"`
	Supply int32  `json:"supply"`

	// 链下元数据
	Description string `json:"description"`
	Image       string `json:"image"`
	Banner      string `json:"banner"`
	Socials     string `json:"socials" gorm:"type:jsonb;default:'[]'"`

	// 版税比例（百分比）
	Royalty *decimal.Decimal `json:"royalty" gorm:"type:numeric"`

	// 关联
	Nfts []Nft `json:"nfts,omitempty" gorm:"foreignKey:TokenAddress;references:Address"`
}
