package model

// NftTrait NFT属性，来自token元数据的attributes字段
type NftTrait struct {
	ID    uint `json:"id" gorm:"primaryKey"`
	NftId uint `json:"nft_id" gorm:"not null;index"`

	Attribute   string  `json:"attribute" gorm:"not null"`
	Value       string  `json:"value" gorm:"not null"`
	DisplayType *string `json:"display_type"`
}
