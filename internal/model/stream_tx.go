package model

import "time"

// StreamContext 事件流上下文（方言）
type StreamContext string

const (
	StreamContextCw721  StreamContext = "cw721"
	StreamContextPallet StreamContext = "pallet"
)

// StreamTx 事件处理追踪记录，每个已处理动作恰好一条，成功或失败
type StreamTx struct {
	ID uint `json:"id" gorm:"primaryKey"`

	TxHash    string        `json:"tx_hash" gorm:"not null;index"`
	Action    string        `json:"action" gorm:"not null"`
	Context   StreamContext `json:"context" gorm:"not null"`
	Date      time.Time     `json:"date" gorm:"not null"`
	IsFailure bool          `json:"is_failure" gorm:"not null"`
	Message   *string       `json:"message"`
	Event     string        `json:"event" gorm:"type:jsonb;default:'{}'"`
}
