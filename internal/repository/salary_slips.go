package repository

import (
	"context"
	"time"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
)

func (r *Repository) CreateSalarySlip(slip *domain.SalarySlip) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO salary_slips (user_id, month, amount, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{slip.UserID, slip.Month, slip.Amount, slip.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&slip.ID, &slip.CreatedAt, &slip.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSalarySlipByID(id int64) (*domain.SalarySlip, error) {
	query := `
		SELECT user_id, month, amount, notes, created_at, version
		FROM salary_slips WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	slip := &domain.SalarySlip{
		ID: id,
	}

	dst := []any{&slip.UserID, &slip.Month, &slip.Amount, &slip.Notes, &slip.CreatedAt, &slip.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return slip, nil
}

func (r *Repository) GetSalarySlipsByUserID(userID int64) ([]*domain.SalarySlip, error) {
	query := `
		SELECT id, user_id, month, amount, notes, created_at, version
		FROM salary_slips WHERE user_id = $1
		ORDER BY month DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slips := make([]*domain.SalarySlip, 0)
	for rows.Next() {
		slip := &domain.SalarySlip{}
		dst := []any{&slip.ID, &slip.UserID, &slip.Month, &slip.Amount, &slip.Notes, &slip.CreatedAt, &slip.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slips, nil
}

func (r *Repository) UpdateSalarySlip(slip *domain.SalarySlip) error {
	query := `
		UPDATE salary_slips
		SET
			month = $1,
			amount = $2,
			notes = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{slip.Month, slip.Amount, slip.Notes, slip.ID, slip.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&slip.CreatedAt, &slip.Version); err != nil {
		return err
	}

	return nil
}
