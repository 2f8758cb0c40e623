package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction 成交记录，buy_now成交时与sale活动同事务写入
type Transaction struct {
	ID uint `json:"id" gorm:"primaryKey"`

	TxHash            string          `json:"tx_hash" gorm:"not null"`
	CollectionAddress string          `json:"collection_address" gorm:"not null;index"`
	BuyerAddress      string          `json:"buyer_address" gorm:"not null"`
	SellerAddress     string          `json:"seller_address" gorm:"not null"`
	Volume            decimal.Decimal `json:"volume" gorm:"type:numeric;not null"`
	Market            Marketplace     `json:"market" gorm:"not null"`
	Date              time.Time       `json:"date" gorm:"not null;index"`
}
