package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stitchfold/admin-gateway/api/controllers"
	"github.com/stitchfold/admin-gateway/api/middleware"
	"github.com/stitchfold/admin-gateway/internal/forms"
	"github.com/stitchfold/admin-gateway/internal/storefront"
	"github.com/stitchfold/admin-gateway/pkg/config"
	"github.com/stitchfold/admin-gateway/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisPinger controllers.Pinger,
	catalogPinger controllers.Pinger,
	formsService *forms.Service,
	storefrontService *storefront.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.BearerToken(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger, catalogPinger))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(storefrontService, logg))
			r.Get("/{slug}", controllers.GetProduct(storefrontService, logg))
			r.Delete("/{productID}", controllers.DeleteProduct(storefrontService, logg))
		})

		r.Route("/form-sessions", func(r chi.Router) {
			r.Post("/", controllers.CreateFormSession(formsService, logg))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", controllers.GetFormSession(formsService, logg))
				r.Delete("/", controllers.CancelFormSession(formsService, logg))
				r.Patch("/fields", controllers.UpdateFormField(formsService, logg))
				r.Route("/images", func(r chi.Router) {
					r.Post("/", controllers.UploadFormImages(formsService, cfg.Form, logg))
					r.Get("/{imageRef}", controllers.GetFormImage(formsService, logg))
					r.Delete("/{imageRef}", controllers.RemoveFormImage(formsService, logg))
				})
				r.Post("/next", controllers.FormNext(formsService, logg))
				r.Post("/previous", controllers.FormPrevious(formsService, logg))
				r.Post("/jump", controllers.FormJump(formsService, logg))
				r.Post("/submit", controllers.FormSubmit(formsService, logg))
			})
		})
	})

	return r
}
