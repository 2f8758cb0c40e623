package logic

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/blues/nmi/internal/config"
	"github.com/blues/nmi/internal/cosmos"
	"github.com/blues/nmi/internal/metadata"
	"github.com/blues/nmi/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var testDbSeq atomic.Int64

// newTestDB 每个测试一个独立的内存库，表结构与生产迁移一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:logic%d?mode=memory&cache=shared", testDbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Collection{},
		&model.Nft{},
		&model.NftTrait{},
		&model.Listing{},
		&model.NftActivity{},
		&model.Transaction{},
		&model.StreamTx{},
	))
	return db
}

type testEnv struct {
	db          *gorm.DB
	nfts        *NftLogic
	listings    *ListingLogic
	collections *CollectionLogic
}

// newTestEnv 组装完整的业务逻辑栈，链查询和元数据指向同一个测试服务
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	var baseUrl string
	mux := http.NewServeMux()
	mux.HandleFunc("/cosmwasm/wasm/v1/contract/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		decoded, err := base64.URLEncoding.DecodeString(parts[len(parts)-1])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var msg map[string]json.RawMessage
		if err := json.Unmarshal(decoded, &msg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		switch {
		case msg["contract_info"] != nil:
			fmt.Fprint(w, `{"data": {"name": "Seiyans", "symbol": "SEIYAN"}}`)
		case msg["num_tokens"] != nil:
			fmt.Fprint(w, `{"data": {"count": 100}}`)
		case msg["nft_info"] != nil:
			fmt.Fprintf(w, `{"data": {"token_uri": "%s/meta/7.json", "extension": {"royalty_percentage": 5}}}`, baseUrl)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/meta/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "Seiyan #7",
			"image": "ipfs://Qm123",
			"attributes": [
				{"trait_type": "Background", "value": "Blue"},
				{"trait_type": "Level", "value": 3, "display_type": "number"}
			]
		}`)
	})
	mux.HandleFunc("/v2/nfts/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"description": "A collection", "pfp": "https://cdn/pfp.png", "socials": {"twitter": "https://x.com/seiyans"}}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	baseUrl = server.URL

	chain, err := cosmos.Init(config.ChainConfig{RpcUrl: server.URL, LcdUrl: server.URL})
	require.NoError(t, err)
	meta := metadata.Init(config.MetadataConfig{PalletApiUrl: server.URL})

	db := newTestDB(t)
	collections := NewCollectionLogic(db, chain, meta)
	return &testEnv{
		db:          db,
		nfts:        NewNftLogic(db, chain, meta, collections),
		listings:    NewListingLogic(db),
		collections: collections,
	}
}
