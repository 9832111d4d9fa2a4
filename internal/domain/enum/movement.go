package enum

// MovementType represents the direction of a stock movement
type MovementType string

const (
	MovementTypeIn  MovementType = "IN"
	MovementTypeOut MovementType = "OUT"
)

func (m MovementType) String() string {
	return string(m)
}

// MovementReason records why stock changed. Movements are append-only, so
// the reason is the only context a later audit has.
type MovementReason string

const (
	MovementReasonSale       MovementReason = "SALE"
	MovementReasonReturn     MovementReason = "RETURN"
	MovementReasonPurchase   MovementReason = "PURCHASE"
	MovementReasonAdjustment MovementReason = "ADJUSTMENT"
)

func (m MovementReason) String() string {
	return string(m)
}
