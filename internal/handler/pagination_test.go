package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantPageSize: 20},
		{name: "explicit values", query: "page=3&page_size=50", wantPage: 3, wantPageSize: 50},
		{name: "zero page clamps to 1", query: "page=0", wantPage: 1, wantPageSize: 20},
		{name: "negative page clamps to 1", query: "page=-5", wantPage: 1, wantPageSize: 20},
		{name: "oversized page_size falls back", query: "page_size=500", wantPage: 1, wantPageSize: 20},
		{name: "garbage falls back", query: "page=abc&page_size=xyz", wantPage: 1, wantPageSize: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, pageSize := pagination(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
