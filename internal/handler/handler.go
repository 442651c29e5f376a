package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/repaart-dev/ops-console/backend/internal/config"
	"github.com/repaart-dev/ops-console/backend/internal/domain"
	"github.com/repaart-dev/ops-console/backend/internal/feed"
	"github.com/repaart-dev/ops-console/backend/internal/repository"
	"github.com/repaart-dev/ops-console/backend/internal/scheduler"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	feed          *feed.Feed
	sessions      *scheduler.Manager

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client, fd *feed.Feed, sessions *scheduler.Manager) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		feed:          fd,
		sessions:      sessions,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// todo lo demas requiere sesion iniciada
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.myInfo).Get("/my-info", h.GetMyInfo)

		r.Route("/riders", func(r chi.Router) {
			r.Get("/", h.GetAllRiders)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RolePlanner})).Post("/", h.CreateRider)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.riderInfo)
				r.Get("/", h.GetRider)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RolePlanner})).Patch("/", h.UpdateRider)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RolePlanner})).Delete("/", h.DeleteRider)
			})
		})

		r.Route("/weeks/{weekID}", func(r chi.Router) {
			r.Use(h.weekSession)
			r.Get("/schedule", h.GetWeekSchedule)
			r.Get("/audit", h.GetWeekAudit)
			r.Get("/metrics", h.GetWeekMetrics)

			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RolePlanner}))
				r.Post("/shifts", h.SaveShift)
				r.Route("/shifts/{id}", func(r chi.Router) {
					r.Delete("/", h.DeleteShift)
					r.Post("/move", h.MoveShift)
				})
				r.With(h.myInfo).Post("/publish", h.PublishWeek)
				r.Post("/discard", h.DiscardWeek)
				r.Post("/quick-fill", h.QuickFillWeek)
			})
		})
	})
}
