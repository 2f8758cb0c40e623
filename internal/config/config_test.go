package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "nmi", cfg.Database.DBName)
	assert.Equal(t, "https://rpc.sei-apis.com", cfg.Chain.RpcUrl)
	assert.Equal(t, "wss://rpc.sei-apis.com/websocket", cfg.Chain.WsUrl)
	assert.Equal(t, "https://rest.sei-apis.com", cfg.Chain.LcdUrl)
	// 市场合约地址必须随默认值就位，否则拍卖流订阅的是空地址
	assert.Equal(t, "sei152u2u0lqc27428cuf8dx48k8saua74m6nql5kgvsu4rfeqm547rsnhy4y9", cfg.Chain.PalletAddress)
	assert.Equal(t, "https://api.pallet.exchange/api", cfg.Metadata.PalletApiUrl)
	assert.Equal(t, 1, cfg.Stream.ReconnectBase)
	assert.Equal(t, 60, cfg.Stream.ReconnectMax)
	assert.Equal(t, 3600, cfg.Task.Interval)
	assert.Equal(t, "info", cfg.Log.Level)
}
