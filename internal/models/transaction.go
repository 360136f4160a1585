package models

import "time"

// Transaction represents a single ledger entry. Amount is stored as an
// unsigned magnitude in cents; the sign of its balance effect is carried
// entirely by Type. Transactions are created and deleted through the
// ledger service, never updated in place.
type Transaction struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID   string    `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID  *string   `gorm:"type:uuid" json:"category_id,omitempty"`
	Type        FlowType  `gorm:"not null" json:"type"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`

	Account  Account   `gorm:"foreignKey:AccountID" json:"account"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
