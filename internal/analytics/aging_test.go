package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invctl/pkg/contracts/domain"
)

func TestBucketIndex(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{name: "zero days", days: 0, want: 0},
		{name: "upper edge of first bucket", days: 30, want: 0},
		{name: "lower edge of second bucket", days: 31, want: 1},
		{name: "upper edge of second bucket", days: 60, want: 1},
		{name: "61 days", days: 61, want: 2},
		{name: "90 days", days: 90, want: 2},
		{name: "91 days", days: 91, want: 3},
		{name: "120 days", days: 120, want: 3},
		{name: "121 days", days: 121, want: 4},
		{name: "negative clamps to first bucket", days: -10, want: 0},
		{name: "sentinel lands in oldest bucket", days: domain.AgingSentinelDays, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketIndex(tt.days))
		})
	}
}

func TestInventoryBucket(t *testing.T) {
	assert.Equal(t, "0-30", InventoryBucket(15))
	assert.Equal(t, "31-60", InventoryBucket(45))
	assert.Equal(t, ">120", InventoryBucket(domain.AgingSentinelDays))
}
