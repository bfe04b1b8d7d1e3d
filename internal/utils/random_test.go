package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateRandomEmployee(t *testing.T) {
	user, err := GenerateRandomEmployee("Passw0rd!", "corp.example.com")
	if err != nil {
		t.Fatalf("GenerateRandomEmployee error: %v", err)
	}

	if user.Role != domain.RoleEmployee {
		t.Fatalf("expected employee role, got %q", user.Role)
	}
	if !strings.HasSuffix(user.Email, "@corp.example.com") {
		t.Fatalf("unexpected email domain: %s", user.Email)
	}
	if strings.Contains(user.PasswordHash, "Passw0rd!") {
		t.Fatal("hash contains plaintext password")
	}
	if !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Fatalf("unexpected hash format: %s", user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Passw0rd!")); err != nil {
		t.Fatalf("hash does not validate known password: %v", err)
	}
}

func TestGenerateRandomMonth(t *testing.T) {
	for i := 0; i < 20; i++ {
		month := GenerateRandomMonth()
		if _, err := time.Parse("2006-01", month); err != nil {
			t.Fatalf("unexpected month format %q: %v", month, err)
		}
	}
}

func TestGenerateRandomSalarySlip(t *testing.T) {
	slip := GenerateRandomSalarySlip(42)
	if slip.UserID != 42 {
		t.Fatalf("user id mismatch: got %d", slip.UserID)
	}
	if slip.Amount <= 0 {
		t.Fatalf("amount should be positive, got %f", slip.Amount)
	}
	if err := ValidateMonth(slip.Month); err != nil {
		t.Fatalf("invalid month %q: %v", slip.Month, err)
	}
}

func TestGenerateRandomExpense(t *testing.T) {
	expense := GenerateRandomExpense(7)
	if expense.UserID != 7 {
		t.Fatalf("user id mismatch: got %d", expense.UserID)
	}
	if expense.Amount <= 0 {
		t.Fatalf("amount should be positive, got %f", expense.Amount)
	}
	if expense.Description == "" {
		t.Fatal("description should not be empty")
	}
}
