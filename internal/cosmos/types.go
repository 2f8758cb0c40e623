package cosmos

// Event 链上事件，属性键值在订阅通道上为base64编码
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// Attribute 事件属性
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ContractInfo cw721合约信息
type ContractInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Supply cw721合约发行量
type Supply struct {
	Count int32 `json:"count"`
}

// NftInfo cw721 token信息
type NftInfo struct {
	TokenUri  string     `json:"token_uri"`
	Extension *Extension `json:"extension"`
}

// Extension cw721扩展信息
type Extension struct {
	RoyaltyPercentage *float64 `json:"royalty_percentage"`
}

// NftOwner cw721 token持有者
type NftOwner struct {
	Owner string `json:"owner"`
}

// PalletListing Pallet市场合约中的挂单状态
type PalletListing struct {
	Owner   string         `json:"owner"`
	Auction *PalletAuction `json:"auction"`
}

// PalletAuction Pallet拍卖信息
type PalletAuction struct {
	Prices         []PalletPrice `json:"prices"`
	CreatedAt      int64         `json:"created_at"`
	ExpirationTime int64         `json:"expiration_time"`
}

// PalletPrice 拍卖价格
type PalletPrice struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// TxResponse 按哈希查询到的交易及其事件
type TxResponse struct {
	Hash   string
	Events []Event
}
