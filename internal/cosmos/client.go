package cosmos

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blues/nmi/internal/config"
)

// QueryError 链查询错误
type QueryError struct {
	Op      string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("chain query %s failed: %s", e.Op, e.Message)
}

// Client 链查询客户端，智能合约查询走LCD REST，交易查询走Tendermint RPC
// 无状态，可并发使用
type Client struct {
	rpcUrl     string
	lcdUrl     string
	httpClient *http.Client
}

func Init(cfg config.ChainConfig) (*Client, error) {
	if cfg.RpcUrl == "" {
		return nil, fmt.Errorf("chain rpc_url is required")
	}
	if cfg.LcdUrl == "" {
		return nil, fmt.Errorf("chain lcd_url is required")
	}

	return &Client{
		rpcUrl:     strings.TrimRight(cfg.RpcUrl, "/"),
		lcdUrl:     strings.TrimRight(cfg.LcdUrl, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// GetCw721ContractInfo 查询cw721合约信息
func (c *Client) GetCw721ContractInfo(ctx context.Context, address string) (*ContractInfo, error) {
	var info ContractInfo
	if err := c.querySmart(ctx, address, map[string]interface{}{"contract_info": struct{}{}}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetCw721ContractSupply 查询cw721合约发行量
func (c *Client) GetCw721ContractSupply(ctx context.Context, address string) (*Supply, error) {
	var supply Supply
	if err := c.querySmart(ctx, address, map[string]interface{}{"num_tokens": struct{}{}}, &supply); err != nil {
		return nil, err
	}
	return &supply, nil
}

// GetNftInfo 查询cw721 token信息
func (c *Client) GetNftInfo(ctx context.Context, address, tokenId string) (*NftInfo, error) {
	msg := map[string]interface{}{
		"nft_info": map[string]string{"token_id": tokenId},
	}

	var info NftInfo
	if err := c.querySmart(ctx, address, msg, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetNftOwner 查询cw721 token持有者
func (c *Client) GetNftOwner(ctx context.Context, address, tokenId string) (*NftOwner, error) {
	msg := map[string]interface{}{
		"owner_of": map[string]string{"token_id": tokenId},
	}

	var owner NftOwner
	if err := c.querySmart(ctx, address, msg, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

// GetPalletListing 查询Pallet市场合约中某个NFT的挂单状态
func (c *Client) GetPalletListing(ctx context.Context, palletAddress, tokenAddress, tokenId string) (*PalletListing, error) {
	msg := map[string]interface{}{
		"nft": map[string]string{
			"address":  tokenAddress,
			"token_id": tokenId,
		},
	}

	var listing PalletListing
	if err := c.querySmart(ctx, palletAddress, msg, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetTx 按哈希查询交易及其事件，属性值保持传输编码
func (c *Client) GetTx(ctx context.Context, txHash string) (*TxResponse, error) {
	endpoint := fmt.Sprintf("%s/tx?hash=0x%s", c.rpcUrl, url.PathEscape(strings.TrimPrefix(txHash, "0x")))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, &QueryError{Op: "tx", Message: err.Error()}
	}

	var envelope struct {
		Result *struct {
			Hash     string `json:"hash"`
			TxResult struct {
				Events []Event `json:"events"`
			} `json:"tx_result"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
			Data    string `json:"data"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &QueryError{Op: "tx", Message: err.Error()}
	}
	if envelope.Error != nil {
		return nil, &QueryError{Op: "tx", Message: envelope.Error.Data}
	}
	if envelope.Result == nil {
		return nil, &QueryError{Op: "tx", Message: "missing result"}
	}

	return &TxResponse{
		Hash:   envelope.Result.Hash,
		Events: envelope.Result.TxResult.Events,
	}, nil
}

// querySmart 执行CosmWasm智能合约查询
func (c *Client) querySmart(ctx context.Context, address string, msg interface{}, out interface{}) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return &QueryError{Op: "smart", Message: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/cosmwasm/wasm/v1/contract/%s/smart/%s",
		c.lcdUrl, url.PathEscape(address), base64.URLEncoding.EncodeToString(payload))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return &QueryError{Op: "smart", Message: err.Error()}
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &QueryError{Op: "smart", Message: err.Error()}
	}
	if len(envelope.Data) == 0 {
		return &QueryError{Op: "smart", Message: "empty query response"}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &QueryError{Op: "smart", Message: err.Error()}
	}

	return nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
