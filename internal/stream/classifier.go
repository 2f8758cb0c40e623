package stream

import (
	"github.com/blues/nmi/internal/cosmos"
	"github.com/blues/nmi/internal/logger"
)

// ActionKind 分类后的动作类型
type ActionKind string

const (
	// cw721方言：wasm事件上action属性的取值
	ActionMint        ActionKind = "mint"
	ActionTransferNft ActionKind = "transfer_nft"
	ActionSendNft     ActionKind = "send_nft"

	// 拍卖方言：事件自身的类型字符串
	ActionCreateAuction ActionKind = "wasm-create_auction"
	ActionBuyNow        ActionKind = "wasm-buy_now"
	ActionCancelAuction ActionKind = "wasm-cancel_auction"
)

const wasmEventType = "wasm"
const actionAttrKey = "action"

// ClassifiedEvent 带动作标签的事件
type ClassifiedEvent struct {
	Action ActionKind
	Event  cosmos.Event
}

// Classifier 按方言从交易事件中筛选并标注动作
type Classifier interface {
	Classify(events []cosmos.Event) []ClassifiedEvent
}

// Cw721Classifier token转移方言分类器：
// 保留wasm类型且action属性取值为mint/transfer_nft/send_nft的事件
type Cw721Classifier struct{}

func NewCw721Classifier() *Cw721Classifier {
	return &Cw721Classifier{}
}

func (c *Cw721Classifier) Classify(events []cosmos.Event) []ClassifiedEvent {
	var classified []ClassifiedEvent

	for _, event := range events {
		if event.Type != wasmEventType {
			continue
		}

		action, err := FindAttribute(event, actionAttrKey)
		if err != nil {
			continue
		}

		switch ActionKind(action) {
		case ActionMint, ActionTransferNft, ActionSendNft:
			classified = append(classified, ClassifiedEvent{Action: ActionKind(action), Event: event})
		default:
			// 是我们订阅的事件形态但动作值不认识，记录后跳过，不落追踪
			logger.Warn("unexpected cw721 action %q in event %+v", action, event)
		}
	}

	return classified
}

// AuctionClassifier 拍卖方言分类器：
// 按事件类型保留create_auction/buy_now/cancel_auction（带厂商前缀）
type AuctionClassifier struct{}

func NewAuctionClassifier() *AuctionClassifier {
	return &AuctionClassifier{}
}

func (c *AuctionClassifier) Classify(events []cosmos.Event) []ClassifiedEvent {
	var classified []ClassifiedEvent

	for _, event := range events {
		switch ActionKind(event.Type) {
		case ActionCreateAuction, ActionBuyNow, ActionCancelAuction:
			classified = append(classified, ClassifiedEvent{Action: ActionKind(event.Type), Event: event})
		}
	}

	return classified
}
