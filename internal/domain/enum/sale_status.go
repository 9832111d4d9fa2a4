package enum

// SaleStatus represents the status of a POS sale
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusVoided    SaleStatus = "VOIDED"
)

func (s SaleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known sale status
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusVoided:
		return true
	}
	return false
}
