package stream

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/blues/nmi/internal/logger"
	"github.com/blues/nmi/internal/logic"
	"github.com/blues/nmi/internal/model"
)

// Processor 处理一个已分类的动作，每次调用对应一次独立的存储会话
type Processor interface {
	Context() model.StreamContext
	Process(ctx context.Context, txHash string, event ClassifiedEvent) error
}

// Tracer 记录每个已处理动作的结果
type Tracer interface {
	CreateStreamTx(params logic.CreateStreamTxParams) error
}

// WorkerConfig 重连退避配置
type WorkerConfig struct {
	ReconnectBase time.Duration
	ReconnectMax  time.Duration
}

// Worker 一条方言流的完整管线：订阅 → 解码 → 分类 → 处理 → 追踪
// 同一worker内消息严格串行处理，这是唯一的顺序保证
type Worker struct {
	name       string
	subscriber *Subscriber
	classifier Classifier
	processor  Processor
	tracer     Tracer
	cfg        WorkerConfig
}

// NewWorker 创建流处理worker
func NewWorker(name string, subscriber *Subscriber, classifier Classifier, processor Processor, tracer Tracer, cfg WorkerConfig) *Worker {
	if cfg.ReconnectBase <= 0 {
		cfg.ReconnectBase = time.Second
	}
	if cfg.ReconnectMax < cfg.ReconnectBase {
		cfg.ReconnectMax = 60 * time.Second
	}

	return &Worker{
		name:       name,
		subscriber: subscriber,
		classifier: classifier,
		processor:  processor,
		tracer:     tracer,
		cfg:        cfg,
	}
}

// Run 运行worker直到ctx取消，传输断开后按指数退避重连
// 收到消息说明连接健康，退避时间重置
func (w *Worker) Run(ctx context.Context) {
	backoff := w.cfg.ReconnectBase

	for {
		err := w.subscriber.Run(ctx, func(raw []byte) {
			backoff = w.cfg.ReconnectBase
			w.handleMessage(ctx, raw)
		})

		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			logger.Info("%s worker stopped", w.name)
			return
		}

		logger.Error("%s stream disconnected: %v, reconnecting in %s", w.name, err, backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("%s worker stopped", w.name)
			return
		case <-timer.C:
		}

		backoff *= 2
		if backoff > w.cfg.ReconnectMax {
			backoff = w.cfg.ReconnectMax
		}
	}
}

// handleMessage 处理一条订阅消息
func (w *Worker) handleMessage(ctx context.Context, raw []byte) {
	// 订阅确认消息正好说明流已经在工作
	if IsAckMessage(raw) {
		logger.Info("%s stream listening", w.name)
		return
	}

	tx, err := ParseMessage(raw)
	if err != nil {
		// 解码失败只影响这一条消息，不落追踪
		logger.Error("%s failed to parse stream message: %v", w.name, err)
		return
	}

	for _, event := range w.classifier.Classify(tx.Events) {
		w.handleAction(ctx, tx.TxHash, event)
	}
}

// handleAction 处理一个动作并记录结果，成功失败各恰好一条追踪
func (w *Worker) handleAction(ctx context.Context, txHash string, event ClassifiedEvent) {
	err := w.processor.Process(ctx, txHash, event)

	rawEvent, marshalErr := json.Marshal(event.Event)
	if marshalErr != nil {
		rawEvent = []byte("{}")
	}

	params := logic.CreateStreamTxParams{
		TxHash:    txHash,
		Action:    string(event.Action),
		Context:   w.processor.Context(),
		Date:      time.Now().UTC(),
		IsFailure: err != nil,
		Event:     string(rawEvent),
	}

	if err != nil {
		message := err.Error()
		params.Message = &message
		logger.Error("%s failed to handle %s event %s: %v", w.name, event.Action, txHash, err)
	} else {
		logger.Info("%s done handle %s event %s", w.name, event.Action, txHash)
	}

	// 追踪写入失败只记录日志，可观测性不能成为新的故障源
	if traceErr := w.tracer.CreateStreamTx(params); traceErr != nil {
		logger.Error("%s failed to create tracing tx: %v", w.name, traceErr)
	}
}
