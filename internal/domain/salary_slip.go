package domain

import (
	"time"
)

type SalarySlip struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Month     string    `json:"month"` // 形如 2025-01
	Amount    float64   `json:"amount"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
