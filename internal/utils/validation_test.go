package utils

import (
	"testing"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
)

func TestValidateMonth(t *testing.T) {
	t.Parallel()

	valid := []string{"2025-01", "2024-12", "1999-06"}
	for _, month := range valid {
		if err := ValidateMonth(month); err != nil {
			t.Errorf("ValidateMonth(%q) = %v, want nil", month, err)
		}
	}

	invalid := []string{"", "2025-13", "2025-1", "01-2025", "2025/01", "january"}
	for _, month := range invalid {
		if err := ValidateMonth(month); err == nil {
			t.Errorf("ValidateMonth(%q) = nil, want error", month)
		}
	}
}

func TestValidateExpenseApprovable(t *testing.T) {
	t.Parallel()

	pending := &domain.Expense{Status: domain.ExpenseStatusPending}
	if err := ValidateExpenseApprovable(pending); err != nil {
		t.Fatalf("pending expense should be approvable, got %v", err)
	}

	approved := &domain.Expense{Status: domain.ExpenseStatusApproved}
	if err := ValidateExpenseApprovable(approved); err == nil {
		t.Fatal("approved expense should not be approvable again")
	}
}
