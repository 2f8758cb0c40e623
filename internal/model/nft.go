package model

import "time"

// Nft NFT模型，(token_address, token_id) 唯一
type Nft struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TokenAddress string `json:"token_address" gorm:"not null;uniqueIndex:idx_nft_token"`
	TokenId      string `json:"token_id" gorm:"not null;uniqueIndex:idx_nft_token"`

	Name        string `json:"name"`
	TokenUri    string `json:"token_uri" gorm:"not null"`
	Image       string `json:"image"`
	Description string `json:"description"`

	// 当前持有者，链上未观察到之前为空
	OwnerAddress *string `json:"owner_address"`

	// 关联
	Traits     []NftTrait    `json:"traits,omitempty" gorm:"foreignKey:NftId"`
	Activities []NftActivity `json:"activities,omitempty" gorm:"foreignKey:NftId"`
}
