package cleaning

// Discount bucket labels in categorical order. Assignment is by half-open
// interval membership over the discount fraction:
// (-0.01, 0], (0, 0.1], (0.1, 0.2], (0.2, 0.3], (0.3, 1.0].
const (
	BucketNoDiscount = "No Discount"
	Bucket1To10      = "1-10%"
	Bucket11To20     = "11-20%"
	Bucket21To30     = "21-30%"
	BucketOver30     = "30%+"
)

// BucketLabels lists the buckets in ascending discount order.
var BucketLabels = []string{
	BucketNoDiscount, Bucket1To10, Bucket11To20, Bucket21To30, BucketOver30,
}

// DiscountBucket assigns exactly one label to a discount fraction. Every
// discount in [0, 1] lands in a bucket; the assignment is monotonic.
func DiscountBucket(d float64) string {
	switch {
	case d <= 0:
		return BucketNoDiscount
	case d <= 0.1:
		return Bucket1To10
	case d <= 0.2:
		return Bucket11To20
	case d <= 0.3:
		return Bucket21To30
	default:
		return BucketOver30
	}
}

// BucketRank returns the position of a label in ascending discount order,
// for sorting bucketed results. Unknown labels sort last.
func BucketRank(label string) int {
	for i, l := range BucketLabels {
		if l == label {
			return i
		}
	}
	return len(BucketLabels)
}
