package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blues/nmi/internal/config"
)

// FetchError 链下元数据获取错误
type FetchError struct {
	Uri     string
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("metadata fetch %s failed: %s", e.Uri, e.Message)
}

// NftMetadata token元数据文档
type NftMetadata struct {
	Name        string                 `json:"name"`
	Description *string                `json:"description"`
	Image       *string                `json:"image"`
	Attributes  []NftMetadataAttribute `json:"attributes"`
}

// NftMetadataAttribute token属性，value和display_type在野外可能是字符串或数字
type NftMetadataAttribute struct {
	TraitType   *string     `json:"trait_type"`
	Type        *string     `json:"type"`
	Value       *FlexString `json:"value"`
	DisplayType *FlexString `json:"display_type"`
}

// FlexString 兼容字符串和数字的JSON字段
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	// 其他类型按缺失处理
	*f = ""
	return nil
}

func (f *FlexString) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// CollectionMetadata 市场侧的集合元数据
type CollectionMetadata struct {
	Description *string         `json:"description"`
	Pfp         *string         `json:"pfp"`
	Banner      *string         `json:"banner"`
	Socials     json.RawMessage `json:"socials"`
}

// Client 链下元数据客户端
type Client struct {
	palletApiUrl string
	httpClient   *http.Client
}

func Init(cfg config.MetadataConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15
	}

	return &Client{
		palletApiUrl: strings.TrimRight(cfg.PalletApiUrl, "/"),
		httpClient:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// GetNftMetadata 按token URI获取元数据文档
func (c *Client) GetNftMetadata(ctx context.Context, uri string) (*NftMetadata, error) {
	body, err := c.get(ctx, uri)
	if err != nil {
		return nil, &FetchError{Uri: uri, Message: err.Error()}
	}

	var meta NftMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, &FetchError{Uri: uri, Message: err.Error()}
	}

	return &meta, nil
}

// GetCollectionMetadata 获取集合的链下元数据
func (c *Client) GetCollectionMetadata(ctx context.Context, address string) (*CollectionMetadata, error) {
	endpoint := fmt.Sprintf("%s/v2/nfts/%s", c.palletApiUrl, url.PathEscape(address))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, &FetchError{Uri: endpoint, Message: err.Error()}
	}

	var meta CollectionMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, &FetchError{Uri: endpoint, Message: err.Error()}
	}

	return &meta, nil
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
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
