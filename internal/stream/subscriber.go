package stream

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

// Subscriber 持有到链节点的单条订阅连接
// 一条逻辑流对应一条连接，消息严格按到达顺序交给handle
type Subscriber struct {
	wsUrl string
	query *Query
}

// NewSubscriber 创建订阅器
func NewSubscriber(wsUrl string, query *Query) *Subscriber {
	return &Subscriber{wsUrl: wsUrl, query: query}
}

// Run 建立连接、发送订阅请求并持续读取，直到传输错误或ctx取消
// 连接断开时未处理完的消息不会保留，由调用方决定重连
func (s *Subscriber) Run(ctx context.Context, handle func(raw []byte)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.wsUrl, nil)
	if err != nil {
		return fmt.Errorf("failed to connect stream: %w", err)
	}
	defer conn.Close()

	// ctx取消时关闭连接，解除阻塞中的读取
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	msg, err := SubscribeMessage(s.query)
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("failed to send subscribe message: %w", err)
	}

	for {
		msgType, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read stream message: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}

		handle(raw)
	}
}
