package utils

import (
	"fmt"
	"time"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
)

func ValidateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("月份格式错误，应为 YYYY-MM")
	}
	return nil
}

func ValidateExpenseApprovable(expense *domain.Expense) error {
	if expense.Status != domain.ExpenseStatusPending {
		return fmt.Errorf("该报销已审批")
	}
	return nil
}
