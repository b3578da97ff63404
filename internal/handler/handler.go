package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/config"
	"github.com/grafiki-ochrony/guard-roster/backend/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	eventsChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, eventsCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		eventsChannel: eventsCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/employees", func(r chi.Router) {
		r.Post("/", h.CreateEmployee)
		r.Get("/", h.GetAllEmployees)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.employeeInfo)
			r.Get("/", h.GetEmployee)
			r.Patch("/", h.UpdateEmployee)
			r.Delete("/", h.DeleteEmployee)
			r.Get("/free", h.CheckEmployeeFree)
			r.Route("/days-off", func(r chi.Router) {
				r.Get("/", h.GetEmployeeDaysOff)
				r.Post("/", h.AddDayOff)
				r.Delete("/", h.RemoveDayOff)
			})
		})
	})

	h.Mux.Route("/sites", func(r chi.Router) {
		r.Post("/", h.CreateSite)
		r.Get("/", h.GetAllSites)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.siteInfo)
			r.Get("/", h.GetSite)
			r.Delete("/", h.DeleteSite)
		})
	})

	h.Mux.Route("/shifts", func(r chi.Router) {
		r.Post("/", h.AssignShift)
		r.Delete("/", h.RemoveShift)
	})

	h.Mux.Route("/schedule/{year}/{month}", func(r chi.Router) {
		r.Use(h.yearMonth)
		r.Get("/", h.GetMonthSchedule)
		r.Post("/autofill", h.AutoFill)
		r.Get("/report", h.GetMonthReport)
	})
}
