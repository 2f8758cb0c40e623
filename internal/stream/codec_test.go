package stream

import (
	"encoding/base64"
	"testing"

	"github.com/blues/nmi/internal/cosmos"
	"github.com/stretchr/testify/assert"
)

func TestDecodeAttr(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "valid base64",
			raw:  base64.StdEncoding.EncodeToString([]byte("transfer_nft")),
			want: "transfer_nft",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "garbled input returns empty",
			raw:  "not-base64!!!",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeAttr(tt.raw))
		})
	}
}

func TestDecodeEvent(t *testing.T) {
	event := cosmos.Event{
		Type: "wasm",
		Attributes: []cosmos.Attribute{
			{
				Key:   base64.StdEncoding.EncodeToString([]byte("action")),
				Value: base64.StdEncoding.EncodeToString([]byte("mint")),
			},
			{
				Key:   base64.StdEncoding.EncodeToString([]byte("token_id")),
				Value: "!!broken!!",
			},
		},
	}

	decoded := DecodeEvent(event)

	assert.Equal(t, "wasm", decoded.Type)
	assert.Len(t, decoded.Attributes, 2)
	assert.Equal(t, "action", decoded.Attributes[0].Key)
	assert.Equal(t, "mint", decoded.Attributes[0].Value)
	// 个别属性损坏不中断整条事件，坏值降级为空串
	assert.Equal(t, "token_id", decoded.Attributes[1].Key)
	assert.Equal(t, "", decoded.Attributes[1].Value)
}

func TestDecodeEvents(t *testing.T) {
	events := []cosmos.Event{
		{Type: "wasm", Attributes: []cosmos.Attribute{
			{Key: base64.StdEncoding.EncodeToString([]byte("owner")), Value: base64.StdEncoding.EncodeToString([]byte("sei1abc"))},
		}},
		{Type: "transfer"},
	}

	decoded := DecodeEvents(events)

	assert.Len(t, decoded, 2)
	assert.Equal(t, "owner", decoded[0].Attributes[0].Key)
	assert.Equal(t, "sei1abc", decoded[0].Attributes[0].Value)
	assert.Equal(t, "transfer", decoded[1].Type)
	assert.Empty(t, decoded[1].Attributes)
}
