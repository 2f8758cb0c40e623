package cosmos

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blues/nmi/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := Init(config.ChainConfig{RpcUrl: server.URL, LcdUrl: server.URL})
	require.NoError(t, err)
	return client
}

func TestInitValidation(t *testing.T) {
	_, err := Init(config.ChainConfig{LcdUrl: "http://lcd"})
	assert.Error(t, err)

	_, err = Init(config.ChainConfig{RpcUrl: "http://rpc"})
	assert.Error(t, err)
}

func TestQuerySmartEncoding(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data": {"name": "Seiyans", "symbol": "SEIYAN"}}`))
	}))

	info, err := client.GetCw721ContractInfo(context.Background(), "sei1collection")
	require.NoError(t, err)
	assert.Equal(t, "Seiyans", info.Name)
	assert.Equal(t, "SEIYAN", info.Symbol)

	// 查询消息走URL安全base64编码进路径
	parts := strings.Split(gotPath, "/")
	encoded := parts[len(parts)-1]
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"contract_info": {}}`, string(decoded))
	assert.Contains(t, gotPath, "/cosmwasm/wasm/v1/contract/sei1collection/smart/")
}

func TestGetPalletListingQueryShape(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		decoded, err := base64.URLEncoding.DecodeString(parts[len(parts)-1])
		require.NoError(t, err)

		var msg map[string]map[string]string
		require.NoError(t, json.Unmarshal(decoded, &msg))
		assert.Equal(t, "sei1collection", msg["nft"]["address"])
		assert.Equal(t, "7", msg["nft"]["token_id"])

		w.Write([]byte(`{"data": {"owner": "sei1seller", "auction": {"prices": [{"denom": "usei", "amount": "1000"}], "created_at": 1700000000, "expiration_time": 1700600000}}}`))
	}))

	listing, err := client.GetPalletListing(context.Background(), "sei1pallet", "sei1collection", "7")
	require.NoError(t, err)
	assert.Equal(t, "sei1seller", listing.Owner)
	require.NotNil(t, listing.Auction)
	assert.Equal(t, "1000", listing.Auction.Prices[0].Amount)
	assert.Equal(t, int64(1700600000), listing.Auction.ExpirationTime)
}

func TestQuerySmartErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			},
		},
		{
			name: "empty data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.GetCw721ContractSupply(context.Background(), "sei1collection")
			var queryErr *QueryError
			require.ErrorAs(t, err, &queryErr)
			assert.Equal(t, "smart", queryErr.Op)
		})
	}
}

func TestGetTx(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"result": {"hash": "ABC123", "tx_result": {"events": [{"type": "wasm", "attributes": [{"key": "cmVjaXBpZW50", "value": "c2VpMWJ1eWVy"}]}]}}}`))
	}))

	tx, err := client.GetTx(context.Background(), "ABC123")
	require.NoError(t, err)

	// 哈希带0x前缀传给节点
	assert.Equal(t, "hash=0xABC123", gotQuery)
	assert.Equal(t, "ABC123", tx.Hash)
	require.Len(t, tx.Events, 1)
	// 事件属性保持传输编码，由调用方决定是否解码
	assert.Equal(t, "cmVjaXBpZW50", tx.Events[0].Attributes[0].Key)
}

func TestGetTxNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "Internal error", "data": "tx (ABC) not found"}}`))
	}))

	_, err := client.GetTx(context.Background(), "ABC")
	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Contains(t, queryErr.Message, "not found")
}
