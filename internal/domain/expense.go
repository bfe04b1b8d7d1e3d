package domain

import (
	"time"
)

type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
)

type Expense struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"userId"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description"`
	Month       string        `json:"month"`
	Status      ExpenseStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	Version     int32         `json:"-"`
}
