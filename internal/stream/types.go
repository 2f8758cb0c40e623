package stream

import (
	"fmt"

	"github.com/blues/nmi/internal/cosmos"
)

// Transaction 订阅通道上的一笔交易，随消息构造，处理完即丢弃
type Transaction struct {
	TxHash string
	Events []cosmos.Event
}

// MissingAttributeError 已识别动作缺少必要属性
type MissingAttributeError struct {
	Key string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing attribute %s", e.Key)
}

// FindAttribute 按键查找事件属性，取第一个匹配，缺失视为错误
func FindAttribute(event cosmos.Event, key string) (string, error) {
	for _, attr := range event.Attributes {
		if attr.Key == key {
			return attr.Value, nil
		}
	}
	return "", &MissingAttributeError{Key: key}
}
