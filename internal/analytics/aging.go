package analytics

// Aging bucket boundaries in days. Buckets are closed on the upper end:
// [0,30], (30,60], (60,90], (90,120], (120,inf). Together they partition the
// non-negative integers exhaustively and without overlap.
var bucketUpperBounds = [4]int{30, 60, 90, 120}

// InventoryBucketLabels are the display labels for the inventory aging view.
var InventoryBucketLabels = [5]string{"0-30", "31-60", "61-90", "91-120", ">120"}

// ReceivableBucketLabels are the pivot column names for the AR aging view.
var ReceivableBucketLabels = [5]string{"b0_30", "b31_60", "b61_90", "b91_120", "b121_plus"}

// BucketIndex maps an elapsed-day count to its aging bucket position.
// Negative elapsed days (a due date in the future, or clock skew on
// inventory dates) clamp to 0 rather than crash.
func BucketIndex(days int) int {
	if days < 0 {
		days = 0
	}
	for i, upper := range bucketUpperBounds {
		if days <= upper {
			return i
		}
	}
	return 4
}

// InventoryBucket returns the inventory aging label for an elapsed-day count.
func InventoryBucket(days int) string {
	return InventoryBucketLabels[BucketIndex(days)]
}
