package models

import "time"

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	// TransactionContribution is a stake paid into the pot.
	TransactionContribution TransactionType = "contribution"
	// TransactionPayout is a jackpot paid to a position holder.
	TransactionPayout TransactionType = "payout"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	// TransactionCompleted indicates the transaction has settled.
	TransactionCompleted TransactionStatus = "completed"
	// TransactionPending indicates the transaction is in flight.
	TransactionPending TransactionStatus = "pending"
)

// Transaction is an illustrative contribution or payout record shown in
// a tontine's history. No payment gateway is integrated; rows are
// written by seeding only and the API lists them read-only.
type Transaction struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	TontineID uint              `gorm:"not null;index" json:"tontine_id"`
	Tontine   *Tontine          `gorm:"foreignKey:TontineID" json:"tontine,omitempty"`
	UserID    uint              `gorm:"not null" json:"user_id"`
	User      *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type      TransactionType   `gorm:"type:varchar(20);not null" json:"type"`
	Amount    int64             `gorm:"not null" json:"amount"`
	Status    TransactionStatus `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Transaction) TableName() string {
	return "transactions"
}
