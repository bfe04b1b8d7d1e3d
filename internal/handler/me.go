package handler

import (
	"net/http"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	h.successResponse(w, r, "获取个人信息成功", struct {
		Email    string      `json:"email"`
		FullName string      `json:"fullName"`
		Role     domain.Role `json:"role"`
	}{
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
}
