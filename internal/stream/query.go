package stream

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Query 订阅过滤条件，各条件以AND连接
type Query struct {
	conditions []string
}

// NewTxQuery 创建交易事件订阅条件 tm.event='Tx'
func NewTxQuery() *Query {
	return &Query{conditions: []string{"tm.event='Tx'"}}
}

// AndExists 追加属性存在条件
func (q *Query) AndExists(attr string) *Query {
	q.conditions = append(q.conditions, fmt.Sprintf("%s EXISTS", attr))
	return q
}

// AndEq 追加属性相等条件
func (q *Query) AndEq(attr, value string) *Query {
	q.conditions = append(q.conditions, fmt.Sprintf("%s = '%s'", attr, value))
	return q
}

func (q *Query) String() string {
	return strings.Join(q.conditions, " AND ")
}

// SubscribeMessage 构造订阅请求的JSON-RPC报文
func SubscribeMessage(q *Query) ([]byte, error) {
	msg := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  "subscribe",
		"id":      "0",
		"params": map[string]string{
			"query": q.String(),
		},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal subscribe message: %w", err)
	}
	return payload, nil
}
