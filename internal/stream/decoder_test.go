package stream

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAckMessage(t *testing.T) {
	assert.True(t, IsAckMessage([]byte(`{"jsonrpc":"2.0","id":"0","result":{}}`)))
	// 确认消息按字面量精确匹配，格式稍有不同就走正常解析
	assert.False(t, IsAckMessage([]byte(`{"jsonrpc": "2.0", "id": "0", "result": {}}`)))
	assert.False(t, IsAckMessage([]byte(`{}`)))
}

func TestParseMessage(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("action"))
	value := base64.StdEncoding.EncodeToString([]byte("mint"))
	raw := fmt.Sprintf(`{
		"result": {
			"events": {"tx.hash": ["ABC123"]},
			"data": {
				"value": {
					"TxResult": {
						"result": {
							"events": [
								{"type": "wasm", "attributes": [{"key": %q, "value": %q}]}
							]
						}
					}
				}
			}
		}
	}`, key, value)

	tx, err := ParseMessage([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "ABC123", tx.TxHash)
	require.Len(t, tx.Events, 1)
	assert.Equal(t, "wasm", tx.Events[0].Type)
	// 属性在解析时已解码
	assert.Equal(t, "action", tx.Events[0].Attributes[0].Key)
	assert.Equal(t, "mint", tx.Events[0].Attributes[0].Value)
}

func TestParseMessageMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		path string
	}{
		{
			name: "missing result",
			raw:  `{}`,
			path: "result",
		},
		{
			name: "missing tx hash",
			raw:  `{"result": {"events": {}}}`,
			path: "result.events[tx.hash]",
		},
		{
			name: "empty tx hash list",
			raw:  `{"result": {"events": {"tx.hash": []}}}`,
			path: "result.events[tx.hash]",
		},
		{
			name: "missing data",
			raw:  `{"result": {"events": {"tx.hash": ["ABC"]}}}`,
			path: "result.data",
		},
		{
			name: "missing data value",
			raw:  `{"result": {"events": {"tx.hash": ["ABC"]}, "data": {}}}`,
			path: "result.data.value",
		},
		{
			name: "missing TxResult",
			raw:  `{"result": {"events": {"tx.hash": ["ABC"]}, "data": {"value": {}}}}`,
			path: "result.data.value.TxResult",
		},
		{
			name: "missing inner result",
			raw:  `{"result": {"events": {"tx.hash": ["ABC"]}, "data": {"value": {"TxResult": {}}}}}`,
			path: "result.data.value.TxResult.result",
		},
		{
			name: "missing inner events",
			raw:  `{"result": {"events": {"tx.hash": ["ABC"]}, "data": {"value": {"TxResult": {"result": {}}}}}}`,
			path: "result.data.value.TxResult.result.events",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := ParseMessage([]byte(tt.raw))
			assert.Nil(t, tx)

			var malformed *MalformedMessageError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.path, malformed.Path)
		})
	}
}

func TestParseMessageEmptyEvents(t *testing.T) {
	// events字段存在但为空列表是合法消息，不是缺失
	raw := `{"result": {"events": {"tx.hash": ["ABC"]}, "data": {"value": {"TxResult": {"result": {"events": []}}}}}}`

	tx, err := ParseMessage([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "ABC", tx.TxHash)
	assert.Empty(t, tx.Events)
}

func TestParseMessageInvalidJson(t *testing.T) {
	tx, err := ParseMessage([]byte(`not json`))
	assert.Nil(t, tx)
	assert.Error(t, err)
}
