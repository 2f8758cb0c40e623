package stream

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/blues/nmi/internal/logic"
	"github.com/blues/nmi/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProcessor 记录每次调用，可注入失败
type fakeProcessor struct {
	calls []ClassifiedEvent
	err   error
}

func (p *fakeProcessor) Context() model.StreamContext {
	return model.StreamContextCw721
}

func (p *fakeProcessor) Process(_ context.Context, _ string, event ClassifiedEvent) error {
	p.calls = append(p.calls, event)
	return p.err
}

// fakeTracer 收集追踪写入
type fakeTracer struct {
	traces []logic.CreateStreamTxParams
	err    error
}

func (t *fakeTracer) CreateStreamTx(params logic.CreateStreamTxParams) error {
	t.traces = append(t.traces, params)
	return t.err
}

func newTestWorker(processor Processor, tracer Tracer) *Worker {
	return NewWorker("test", nil, NewCw721Classifier(), processor, tracer, WorkerConfig{})
}

func streamMessage(txHash, action string) []byte {
	return []byte(fmt.Sprintf(`{
		"result": {
			"events": {"tx.hash": [%q]},
			"data": {
				"value": {
					"TxResult": {
						"result": {
							"events": [
								{"type": "wasm", "attributes": [
									{"key": %q, "value": %q},
									{"key": %q, "value": %q},
									{"key": %q, "value": %q},
									{"key": %q, "value": %q}
								]}
							]
						}
					}
				}
			}
		}
	}`, txHash,
		b64("action"), b64(action),
		b64("_contract_address"), b64("sei1collection"),
		b64("token_id"), b64("7"),
		b64("owner"), b64("sei1minter")))
}

func TestWorkerHandleMessageAck(t *testing.T) {
	processor := &fakeProcessor{}
	tracer := &fakeTracer{}
	w := newTestWorker(processor, tracer)

	w.handleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":"0","result":{}}`))

	assert.Empty(t, processor.calls)
	assert.Empty(t, tracer.traces)
}

func TestWorkerHandleMessageMalformed(t *testing.T) {
	processor := &fakeProcessor{}
	tracer := &fakeTracer{}
	w := newTestWorker(processor, tracer)

	// 解码失败只影响这一条消息，不落追踪
	w.handleMessage(context.Background(), []byte(`{"result": {}}`))

	assert.Empty(t, processor.calls)
	assert.Empty(t, tracer.traces)
}

func TestWorkerHandleMessageSuccess(t *testing.T) {
	processor := &fakeProcessor{}
	tracer := &fakeTracer{}
	w := newTestWorker(processor, tracer)

	w.handleMessage(context.Background(), streamMessage("TX1", "mint"))

	require.Len(t, processor.calls, 1)
	assert.Equal(t, ActionMint, processor.calls[0].Action)

	// 成功的动作恰好一条追踪
	require.Len(t, tracer.traces, 1)
	trace := tracer.traces[0]
	assert.Equal(t, "TX1", trace.TxHash)
	assert.Equal(t, "mint", trace.Action)
	assert.Equal(t, model.StreamContextCw721, trace.Context)
	assert.False(t, trace.IsFailure)
	assert.Nil(t, trace.Message)
	assert.Contains(t, trace.Event, "wasm")
}

func TestWorkerHandleMessageProcessFailure(t *testing.T) {
	processor := &fakeProcessor{err: errors.New("projection failed")}
	tracer := &fakeTracer{}
	w := newTestWorker(processor, tracer)

	w.handleMessage(context.Background(), streamMessage("TX1", "transfer_nft"))

	// 失败的动作同样恰好一条追踪，带失败标记和原因
	require.Len(t, tracer.traces, 1)
	trace := tracer.traces[0]
	assert.True(t, trace.IsFailure)
	require.NotNil(t, trace.Message)
	assert.Equal(t, "projection failed", *trace.Message)
}

func TestWorkerHandleMessageUnclassified(t *testing.T) {
	processor := &fakeProcessor{}
	tracer := &fakeTracer{}
	w := newTestWorker(processor, tracer)

	// 动作值不在闭集内：不处理也不追踪
	w.handleMessage(context.Background(), streamMessage("TX1", "approve"))

	assert.Empty(t, processor.calls)
	assert.Empty(t, tracer.traces)
}

func TestWorkerHandleActionTracerFailure(t *testing.T) {
	processor := &fakeProcessor{}
	tracer := &fakeTracer{err: errors.New("trace insert failed")}
	w := newTestWorker(processor, tracer)

	// 追踪写入失败只记录日志，不影响消息处理
	assert.NotPanics(t, func() {
		w.handleMessage(context.Background(), streamMessage("TX1", "mint"))
	})
	assert.Len(t, processor.calls, 1)
}
