package handler

type ContextKey string

var (
	RoleCtxKey     ContextKey = "role"
	SubCtxKey      ContextKey = "sub"
	CurrentUserCtx ContextKey = "currentUser"
	SalarySlipCtx  ContextKey = "salarySlip"
	ExpenseCtx     ContextKey = "expense"
)
