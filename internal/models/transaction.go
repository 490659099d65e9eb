package models

import "time"

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Payment methods. A free-method transaction always carries amount 0.
const (
	MethodCard = "card"
	MethodCash = "cash"
	MethodFree = "free"
)

// Transaction is an append-only ledger record; never mutated or deleted.
type Transaction struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Method      string    `json:"method,omitempty"`
}
