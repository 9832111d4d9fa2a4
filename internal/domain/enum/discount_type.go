package enum

// DiscountType describes how an order-level discount is expressed
type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "FIXED"
	DiscountTypePercentage DiscountType = "PERCENTAGE"
)

func (d DiscountType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known discount type
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountTypeFixed, DiscountTypePercentage:
		return true
	}
	return false
}
