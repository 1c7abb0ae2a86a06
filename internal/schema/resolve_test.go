package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumn(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		candidates []string
		want       int
	}{
		{
			name:       "exact match",
			headers:    []string{"item_id", "qty_on_hand"},
			candidates: []string{"item_id"},
			want:       0,
		},
		{
			name:       "case insensitive",
			headers:    []string{"Item_ID", "Qty_On_Hand"},
			candidates: []string{"qty_on_hand"},
			want:       1,
		},
		{
			name:       "surrounding whitespace ignored",
			headers:    []string{"  item_id  ", "qty"},
			candidates: []string{"item_id"},
			want:       0,
		},
		{
			name:       "inner whitespace matched by second comparator",
			headers:    []string{"Qty  On Hand"},
			candidates: []string{"qty on hand"},
			want:       0,
		},
		{
			name:       "candidate order decides within a comparator",
			headers:    []string{"sku", "item_id"},
			candidates: []string{"item_id", "sku"},
			want:       1,
		},
		{
			name:       "exact pass exhausted before whitespace pass starts",
			headers:    []string{"itemid", "sku"},
			candidates: []string{"item id", "sku"},
			want:       1,
		},
		{
			name:       "no match",
			headers:    []string{"foo", "bar"},
			candidates: []string{"item_id", "sku"},
			want:       -1,
		},
		{
			name:       "empty headers",
			headers:    nil,
			candidates: []string{"item_id"},
			want:       -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColumn(tt.headers, tt.candidates)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripWhitespace(t *testing.T) {
	assert.Equal(t, "qtyonhand", stripWhitespace("Qty  On\tHand"))
	assert.Equal(t, "", stripWhitespace("   "))
}
