package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
	"github.com/anshumat-labs/payroll-manager/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) CreateSalarySlip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64   `json:"userId" validate:"required"`
		Month  string  `json:"month" validate:"required"`
		Amount float64 `json:"amount" validate:"required,gt=0"`
		Notes  string  `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateMonth(req.Month); err != nil {
		h.badRequest(w, r, err)
		return
	}

	slip := &domain.SalarySlip{
		UserID: req.UserID,
		Month:  req.Month,
		Amount: req.Amount,
		Notes:  req.Notes,
	}

	if err := h.repository.CreateSalarySlip(slip); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "salary_slips_user_id_fkey":
				h.errorResponse(w, r, http.StatusBadRequest, "用户不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "工资条创建成功", slip)
}

func (h *Handler) GetMySalarySlips(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	slips, err := h.repository.GetSalarySlipsByUserID(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取工资条成功", slips)
}

func (h *Handler) UpdateSalarySlip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month  *string  `json:"month"`
		Amount *float64 `json:"amount" validate:"omitempty,gt=0"`
		Notes  *string  `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	slip := r.Context().Value(SalarySlipCtx).(*domain.SalarySlip)

	if req.Month != nil {
		if err := utils.ValidateMonth(*req.Month); err != nil {
			h.badRequest(w, r, err)
			return
		}
		slip.Month = *req.Month
	}
	if req.Amount != nil {
		slip.Amount = *req.Amount
	}
	if req.Notes != nil {
		slip.Notes = *req.Notes
	}

	if err := h.repository.UpdateSalarySlip(slip); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "更新工资条失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新工资条成功", slip)
}
