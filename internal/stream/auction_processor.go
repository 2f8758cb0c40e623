package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/blues/nmi/internal/cosmos"
	"github.com/blues/nmi/internal/logic"
	"github.com/blues/nmi/internal/model"
	"github.com/shopspring/decimal"
)

const collectionAddressAttrKey = "collection_address"
const defaultDenom = "usei"

// ListingStore 挂单生命周期的原子写入
type ListingStore interface {
	FindListingByNftId(nftId uint) (*model.Listing, error)
	CreateListing(params logic.CreateListingParams) error
	CancelListing(listing *model.Listing, txHash string, date time.Time) error
	CompleteSale(listing *model.Listing, buyer, txHash string, date time.Time) error
}

// AuctionQuerier 拍卖相关的链查询
type AuctionQuerier interface {
	GetPalletListing(ctx context.Context, palletAddress, tokenAddress, tokenId string) (*cosmos.PalletListing, error)
	GetTx(ctx context.Context, txHash string) (*cosmos.TxResponse, error)
}

// AuctionProcessor 拍卖方言处理器
// 挂单生命周期只归本方言管理，cw721方言不触碰Listing
type AuctionProcessor struct {
	nfts          NftStore
	listings      ListingStore
	chain         AuctionQuerier
	palletAddress string
}

// NewAuctionProcessor 创建拍卖处理器
func NewAuctionProcessor(nfts NftStore, listings ListingStore, chain AuctionQuerier, palletAddress string) *AuctionProcessor {
	return &AuctionProcessor{
		nfts:          nfts,
		listings:      listings,
		chain:         chain,
		palletAddress: palletAddress,
	}
}

func (p *AuctionProcessor) Context() model.StreamContext {
	return model.StreamContextPallet
}

// Process 处理一个拍卖动作
func (p *AuctionProcessor) Process(ctx context.Context, txHash string, event ClassifiedEvent) error {
	switch event.Action {
	case ActionCreateAuction:
		return p.handleCreateAuction(ctx, txHash, event.Event)
	case ActionBuyNow:
		return p.handleBuyNow(ctx, txHash, event.Event)
	case ActionCancelAuction:
		return p.handleCancelAuction(ctx, txHash, event.Event)
	default:
		return fmt.Errorf("unhandled auction action %s", event.Action)
	}
}

// handleCreateAuction 链上确认存在活跃拍卖后，原子写入挂单和list活动
func (p *AuctionProcessor) handleCreateAuction(ctx context.Context, txHash string, event cosmos.Event) error {
	tokenAddress, tokenId, err := p.auctionTarget(event)
	if err != nil {
		return err
	}

	nftId, err := p.nfts.CreateNftOrUpdateOwner(ctx, tokenAddress, tokenId, nil)
	if err != nil {
		return err
	}

	palletListing, err := p.chain.GetPalletListing(ctx, p.palletAddress, tokenAddress, tokenId)
	if err != nil {
		return err
	}

	// 链上已无活跃拍卖，空操作即成功
	if palletListing.Auction == nil {
		return nil
	}
	auction := palletListing.Auction

	if len(auction.Prices) == 0 {
		return fmt.Errorf("can not parse pallet listing price for %s/%s", tokenAddress, tokenId)
	}
	price := auction.Prices[0]

	amount, err := decimal.NewFromString(price.Amount)
	if err != nil {
		return fmt.Errorf("can not parse pallet listing price %q: %w", price.Amount, err)
	}

	denom := price.Denom
	if denom == "" {
		denom = defaultDenom
	}

	expiration := auction.ExpirationTime

	return p.listings.CreateListing(logic.CreateListingParams{
		NftId:             nftId,
		CollectionAddress: tokenAddress,
		SellerAddress:     palletListing.Owner,
		Price:             amount,
		Denom:             denom,
		TxHash:            txHash,
		CreatedDate:       time.Unix(auction.CreatedAt, 0).UTC(),
		ExpirationTime:    &expiration,
		Marketplace:       model.MarketplacePallet,
	})
}

// handleBuyNow 从交易自身的事件里解析买家，原子完成成交三连写
func (p *AuctionProcessor) handleBuyNow(ctx context.Context, txHash string, event cosmos.Event) error {
	tokenAddress, tokenId, err := p.auctionTarget(event)
	if err != nil {
		return err
	}

	nftId, err := p.nfts.CreateNftOrUpdateOwner(ctx, tokenAddress, tokenId, nil)
	if err != nil {
		return err
	}

	listing, err := p.listings.FindListingByNftId(nftId)
	if err != nil {
		return err
	}
	if listing == nil {
		return nil
	}

	tx, err := p.chain.GetTx(ctx, txHash)
	if err != nil {
		return err
	}

	buyer := findBuyerAddress(tx.Events)
	if buyer == "" {
		return fmt.Errorf("can not get buyer from tx %s in buy now event", txHash)
	}

	return p.listings.CompleteSale(listing, buyer, txHash, time.Now().UTC())
}

// handleCancelAuction 原子删除挂单并写入delist活动
func (p *AuctionProcessor) handleCancelAuction(ctx context.Context, txHash string, event cosmos.Event) error {
	tokenAddress, tokenId, err := p.auctionTarget(event)
	if err != nil {
		return err
	}

	nftId, err := p.nfts.CreateNftOrUpdateOwner(ctx, tokenAddress, tokenId, nil)
	if err != nil {
		return err
	}

	listing, err := p.listings.FindListingByNftId(nftId)
	if err != nil {
		return err
	}
	if listing == nil {
		return nil
	}

	return p.listings.CancelListing(listing, txHash, time.Now().UTC())
}

func (p *AuctionProcessor) auctionTarget(event cosmos.Event) (tokenAddress, tokenId string, err error) {
	tokenAddress, err = FindAttribute(event, collectionAddressAttrKey)
	if err != nil {
		return "", "", err
	}
	tokenId, err = FindAttribute(event, tokenIdAttrKey)
	if err != nil {
		return "", "", err
	}
	return tokenAddress, tokenId, nil
}

// findBuyerAddress 在交易事件中找wasm事件的recipient属性，属性保持传输编码
func findBuyerAddress(events []cosmos.Event) string {
	for _, event := range events {
		if event.Type != wasmEventType {
			continue
		}
		for _, attr := range event.Attributes {
			if DecodeAttr(attr.Key) == recipientAttrKey {
				return DecodeAttr(attr.Value)
			}
		}
	}
	return ""
}
