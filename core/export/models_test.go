package export

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PageQueryFromValues(t *testing.T) {
	options := []int{25, 50, 100}

	tests := []struct {
		name  string
		query string
		want  PageQuery
	}{
		{"empty", "", PageQuery{Page: 1, Limit: 25}},
		{"all params", "page=3&limit=50&q=alice", PageQuery{Page: 3, Limit: 50, Search: "alice"}},
		{"invalid page falls back", "page=0", PageQuery{Page: 1, Limit: 25}},
		{"garbage page falls back", "page=lol", PageQuery{Page: 1, Limit: 25}},
		{"unsupported limit falls back", "limit=33", PageQuery{Page: 1, Limit: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, PageQueryFromValues(v, options))
		})
	}
}

func Test_PageQuery_Values(t *testing.T) {
	tests := []struct {
		name  string
		query PageQuery
		want  string
	}{
		{"defaults are omitted", PageQuery{Page: 1, Limit: 25}, ""},
		{"page only", PageQuery{Page: 2, Limit: 25}, "page=2"},
		{"limit only", PageQuery{Page: 1, Limit: 50}, "limit=50"},
		{"search only", PageQuery{Page: 1, Limit: 25, Search: "alice"}, "q=alice"},
		{"everything", PageQuery{Page: 4, Limit: 100, Search: "bob"}, "limit=100&page=4&q=bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Values().Encode())
		})
	}
}
