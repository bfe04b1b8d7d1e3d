package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type ExpenseApprovedMailData struct {
	FullName string  `json:"fullName"`
	Month    string  `json:"month"`
	Amount   float64 `json:"amount"`
}
