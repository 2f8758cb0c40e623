package stream

import (
	"context"
	"fmt"

	"github.com/blues/nmi/internal/cosmos"
	"github.com/blues/nmi/internal/model"
)

const (
	contractAddressAttrKey = "_contract_address"
	tokenIdAttrKey         = "token_id"
	ownerAttrKey           = "owner"
	recipientAttrKey       = "recipient"
)

// NftStore 幂等NFT写入
type NftStore interface {
	CreateNftOrUpdateOwner(ctx context.Context, tokenAddress, tokenId string, owner *string) (uint, error)
}

// Cw721Processor token转移方言处理器，只负责NFT持有者投影，不触碰挂单
type Cw721Processor struct {
	nfts NftStore
}

// NewCw721Processor 创建cw721处理器
func NewCw721Processor(nfts NftStore) *Cw721Processor {
	return &Cw721Processor{nfts: nfts}
}

func (p *Cw721Processor) Context() model.StreamContext {
	return model.StreamContextCw721
}

// Process 处理一个cw721动作
func (p *Cw721Processor) Process(ctx context.Context, txHash string, event ClassifiedEvent) error {
	switch event.Action {
	case ActionMint:
		return p.handleMint(ctx, event.Event)
	case ActionTransferNft:
		return p.handleTransfer(ctx, event.Event)
	case ActionSendNft:
		return p.handleSend(ctx, event.Event)
	default:
		return fmt.Errorf("unhandled cw721 action %s", event.Action)
	}
}

// handleMint owner属性为新持有者
func (p *Cw721Processor) handleMint(ctx context.Context, event cosmos.Event) error {
	tokenAddress, err := FindAttribute(event, contractAddressAttrKey)
	if err != nil {
		return err
	}
	tokenId, err := FindAttribute(event, tokenIdAttrKey)
	if err != nil {
		return err
	}
	owner, err := FindAttribute(event, ownerAttrKey)
	if err != nil {
		return err
	}

	_, err = p.nfts.CreateNftOrUpdateOwner(ctx, tokenAddress, tokenId, &owner)
	return err
}

// handleTransfer recipient属性为新持有者
func (p *Cw721Processor) handleTransfer(ctx context.Context, event cosmos.Event) error {
	tokenAddress, err := FindAttribute(event, contractAddressAttrKey)
	if err != nil {
		return err
	}
	tokenId, err := FindAttribute(event, tokenIdAttrKey)
	if err != nil {
		return err
	}
	recipient, err := FindAttribute(event, recipientAttrKey)
	if err != nil {
		return err
	}

	_, err = p.nfts.CreateNftOrUpdateOwner(ctx, tokenAddress, tokenId, &recipient)
	return err
}

// handleSend 效果与transfer相同，接收方成为新持有者
func (p *Cw721Processor) handleSend(ctx context.Context, event cosmos.Event) error {
	return p.handleTransfer(ctx, event)
}
