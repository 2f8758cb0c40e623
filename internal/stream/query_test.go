package stream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryString(t *testing.T) {
	q := NewTxQuery().
		AndExists("wasm.action").
		AndExists("wasm._contract_address").
		AndExists("wasm.token_id")

	assert.Equal(t, "tm.event='Tx' AND wasm.action EXISTS AND wasm._contract_address EXISTS AND wasm.token_id EXISTS", q.String())
}

func TestQueryStringEq(t *testing.T) {
	q := NewTxQuery().AndEq("execute._contract_address", "sei1pallet")

	assert.Equal(t, "tm.event='Tx' AND execute._contract_address = 'sei1pallet'", q.String())
}

func TestSubscribeMessage(t *testing.T) {
	payload, err := SubscribeMessage(NewTxQuery().AndExists("wasm.action"))
	require.NoError(t, err)

	var msg struct {
		Jsonrpc string `json:"jsonrpc"`
		Method  string `json:"method"`
		Id      string `json:"id"`
		Params  struct {
			Query string `json:"query"`
		} `json:"params"`
	}
	require.NoError(t, json.Unmarshal(payload, &msg))

	assert.Equal(t, "2.0", msg.Jsonrpc)
	assert.Equal(t, "subscribe", msg.Method)
	assert.Equal(t, "0", msg.Id)
	assert.Equal(t, "tm.event='Tx' AND wasm.action EXISTS", msg.Params.Query)
}
