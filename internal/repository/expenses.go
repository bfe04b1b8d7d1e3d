package repository

import (
	"context"
	"time"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
)

func (r *Repository) CreateExpense(expense *domain.Expense) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO expenses (user_id, amount, description, month)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, version
	`

	args := []any{expense.UserID, expense.Amount, expense.Description, expense.Month}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&expense.ID, &expense.Status, &expense.CreatedAt, &expense.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetExpenseByID(id int64) (*domain.Expense, error) {
	query := `
		SELECT user_id, amount, description, month, status, created_at, version
		FROM expenses WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	expense := &domain.Expense{
		ID: id,
	}

	dst := []any{&expense.UserID, &expense.Amount, &expense.Description, &expense.Month, &expense.Status, &expense.CreatedAt, &expense.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return expense, nil
}

func (r *Repository) GetExpensesByUserID(userID int64) ([]*domain.Expense, error) {
	query := `
		SELECT id, user_id, amount, description, month, status, created_at, version
		FROM expenses WHERE user_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense := &domain.Expense{}
		dst := []any{&expense.ID, &expense.UserID, &expense.Amount, &expense.Description, &expense.Month, &expense.Status, &expense.CreatedAt, &expense.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *Repository) ApproveExpense(expense *domain.Expense) error {
	// 只有处于 pending 状态的报销才允许被审批
	query := `
		UPDATE expenses
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3 AND status = $4
		RETURNING status, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{domain.ExpenseStatusApproved, expense.ID, expense.Version, domain.ExpenseStatusPending}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&expense.Status, &expense.Version); err != nil {
		return err
	}

	return nil
}
