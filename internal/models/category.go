package models

// Category represents a transaction category. Type is relied on by the
// ledger's direction resolution and budget aggregation, so it is treated
// as immutable once transactions reference the category.
type Category struct {
	Base
	UserID string   `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string   `gorm:"not null" json:"name"`
	Type   FlowType `gorm:"not null" json:"type"`
	Color  string   `json:"color"`
	Icon   string   `json:"icon"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
