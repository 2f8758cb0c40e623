package stream

import (
	"encoding/base64"

	"github.com/blues/nmi/internal/cosmos"
)

// DecodeAttr 解码base64属性，失败时返回空字符串
// 属性是尽力而为的，个别损坏的属性不应中断整笔交易的处理
func DecodeAttr(raw string) string {
	buf, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return ""
	}
	return string(buf)
}

// DecodeEvent 解码事件中所有属性的键和值
func DecodeEvent(event cosmos.Event) cosmos.Event {
	attributes := make([]cosmos.Attribute, 0, len(event.Attributes))
	for _, attr := range event.Attributes {
		attributes = append(attributes, cosmos.Attribute{
			Key:   DecodeAttr(attr.Key),
			Value: DecodeAttr(attr.Value),
		})
	}

	return cosmos.Event{
		Type:       event.Type,
		Attributes: attributes,
	}
}

// DecodeEvents 解码一组事件
func DecodeEvents(events []cosmos.Event) []cosmos.Event {
	decoded := make([]cosmos.Event, 0, len(events))
	for _, event := range events {
		decoded = append(decoded, DecodeEvent(event))
	}
	return decoded
}
