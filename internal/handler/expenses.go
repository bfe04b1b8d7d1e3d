package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
	"github.com/anshumat-labs/payroll-manager/backend/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
)

func (h *Handler) SubmitExpense(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	var req struct {
		Amount      float64 `json:"amount" validate:"required,gt=0"`
		Description string  `json:"description"`
		Month       string  `json:"month" validate:"required"`
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

	expense := &domain.Expense{
		UserID:      user.ID,
		Amount:      req.Amount,
		Description: req.Description,
		Month:       req.Month,
	}

	if err := h.repository.CreateExpense(expense); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "expenses_user_id_fkey":
				h.errorResponse(w, r, http.StatusBadRequest, "用户不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "报销提交成功", expense)
}

func (h *Handler) GetMyExpenses(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	expenses, err := h.repository.GetExpensesByUserID(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取报销记录成功", expenses)
}

func (h *Handler) ApproveExpense(w http.ResponseWriter, r *http.Request) {
	expense := r.Context().Value(ExpenseCtx).(*domain.Expense)

	if err := utils.ValidateExpenseApprovable(expense); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repository.ApproveExpense(expense); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 并发审批时只有一个请求能成功
			h.errorResponse(w, r, http.StatusBadRequest, "审批失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 获取报销人信息用于发送通知邮件
	owner, err := h.repository.GetUserByID(expense.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 准备通知邮件
	mailMessage := domain.MailMessage{
		Type: "expense_approved",
		To:   owner.Email,
		Data: domain.ExpenseApprovedMailData{
			FullName: owner.FullName,
			Month:    expense.Month,
			Amount:   expense.Amount,
		},
	}

	// 序列化邮件
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 发送邮件到消息队列中
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "报销审批成功", expense)
}
