package handler

import (
	"github.com/anshumat-labs/payroll-manager/backend/internal/config"
	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
	"github.com/anshumat-labs/payroll-manager/backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Use(h.currentUser)
			r.Get("/me", h.GetMyInfo)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.currentUser)

		r.Route("/salary-slips", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateSalarySlip)
			r.Get("/", h.GetMySalarySlips) // 员工只能看到自己的工资条
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.salarySlip)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateSalarySlip)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", h.SubmitExpense)
			r.Get("/", h.GetMyExpenses)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.expense)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/approve", h.ApproveExpense)
			})
		})
	})
}
