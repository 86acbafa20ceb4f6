package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/unclebandit/smsify-backend/internal/controller"
	"github.com/unclebandit/smsify-backend/internal/handler"
	"github.com/unclebandit/smsify-backend/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	SMS      *controller.SMSController
	Category *controller.CategoryController
	Campaign *controller.CampaignController
	Health   *handler.HealthHandler
	Metrics  http.Handler

	// Webhook verifies provider signatures; Auth checks bearer tokens.
	Webhook func(http.Handler) http.Handler
	Auth    func(http.Handler) http.Handler
}

// NewRouter configures routes and middleware
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.Health.Healthz)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sms", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(h.Webhook)
				r.Post("/receive", h.SMS.Receive)
				r.Post("/status", h.SMS.Status)
			})
			r.Group(func(r chi.Router) {
				r.Use(h.Auth)
				r.Post("/sendBulk", h.SMS.SendBulk)
				r.Get("/responses/{campaignId}", h.SMS.ListReplies)
				r.Get("/messages/{campaignId}", h.SMS.ListMessages)
			})
		})

		r.Route("/category", func(r chi.Router) {
			r.Use(h.Auth)
			r.Post("/", h.Category.AddCategories)
			r.Get("/{campaignId}", h.Category.ListCategories)
			r.Put("/update/{categoryId}", h.Category.UpdateCategory)
			r.Put("/delete/{categoryId}", h.Category.DeleteCategory)
		})

		r.With(h.Auth).Put("/campaign/{campaignId}", h.Campaign.UpdateCampaign)
	})

	return r
}
