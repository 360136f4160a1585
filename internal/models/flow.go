package models

// FlowType is the direction of money movement. It is shared by categories
// and transactions: a transaction's direction is resolved once at creation
// time and stored, never re-derived from its category afterwards, so a
// later category change cannot retroactively alter historical records.
type FlowType string

const (
	FlowIncome  FlowType = "income"
	FlowExpense FlowType = "expense"
)

// Adjustment returns the signed balance delta (in cents) a transaction of
// this direction and magnitude applies to its account.
func (f FlowType) Adjustment(amount int64) int64 {
	if f == FlowIncome {
		return amount
	}
	return -amount
}
