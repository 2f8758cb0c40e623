package stream

import (
	"encoding/json"
	"fmt"

	"github.com/blues/nmi/internal/cosmos"
)

// ackMessage 订阅成功后节点回发的确认消息，不是交易，直接跳过
const ackMessage = `{"jsonrpc":"2.0","id":"0","result":{}}`

// MalformedMessageError 订阅消息缺少固定路径上的字段
type MalformedMessageError struct {
	Path string
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("malformed message: missing %s", e.Path)
}

// IsAckMessage 判断是否为订阅确认消息
func IsAckMessage(raw []byte) bool {
	return string(raw) == ackMessage
}

// txEnvelope 订阅消息的反序列化模式
// 指针字段用于区分缺失和空值，逐层校验后报出字段限定的错误
type txEnvelope struct {
	Result *struct {
		Events map[string][]string `json:"events"`
		Data   *struct {
			Value *struct {
				TxResult *struct {
					Result *struct {
						Events *[]cosmos.Event `json:"events"`
					} `json:"result"`
				} `json:"TxResult"`
			} `json:"value"`
		} `json:"data"`
	} `json:"result"`
}

// ParseMessage 解析订阅消息为Transaction，事件属性解码后返回
func ParseMessage(raw []byte) (*Transaction, error) {
	var envelope txEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("can not parse raw message: %w", err)
	}

	if envelope.Result == nil {
		return nil, &MalformedMessageError{Path: "result"}
	}

	hashes, ok := envelope.Result.Events["tx.hash"]
	if !ok || len(hashes) == 0 || hashes[0] == "" {
		return nil, &MalformedMessageError{Path: "result.events[tx.hash]"}
	}
	txHash := hashes[0]

	data := envelope.Result.Data
	if data == nil {
		return nil, &MalformedMessageError{Path: "result.data"}
	}
	if data.Value == nil {
		return nil, &MalformedMessageError{Path: "result.data.value"}
	}
	if data.Value.TxResult == nil {
		return nil, &MalformedMessageError{Path: "result.data.value.TxResult"}
	}
	if data.Value.TxResult.Result == nil {
		return nil, &MalformedMessageError{Path: "result.data.value.TxResult.result"}
	}
	if data.Value.TxResult.Result.Events == nil {
		return nil, &MalformedMessageError{Path: "result.data.value.TxResult.result.events"}
	}

	return &Transaction{
		TxHash: txHash,
		Events: DecodeEvents(*data.Value.TxResult.Result.Events),
	}, nil
}
