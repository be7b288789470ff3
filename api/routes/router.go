package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/xpertech-quotes/api/controllers"
	wizardcontrollers "github.com/angelmondragon/xpertech-quotes/api/controllers/wizard"
	"github.com/angelmondragon/xpertech-quotes/api/middleware"
	"github.com/angelmondragon/xpertech-quotes/internal/sessions"
	"github.com/angelmondragon/xpertech-quotes/internal/wizard"
	"github.com/angelmondragon/xpertech-quotes/pkg/config"
	"github.com/angelmondragon/xpertech-quotes/pkg/logger"
	"github.com/angelmondragon/xpertech-quotes/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	quoteMetrics *metrics.QuoteMetrics,
	engine *wizard.Engine,
	sessionService sessions.Service,
	rateStore middleware.RateLimiterStore,
	readiness map[string]controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.Metrics(quoteMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	view := wizardcontrollers.View{Engine: engine, Symbol: cfg.Handoff.CurrencySymbol}
	sessionPolicy := middleware.NewRateLimitPolicy(
		"wizard_session",
		cfg.RateLimit.SessionWindow,
		cfg.RateLimit.SessionIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", controllers.CatalogList(engine.Catalog()))
		r.Post("/quotes", wizardcontrollers.QuoteCompute(view, quoteMetrics, logg))

		r.Route("/wizard", func(r chi.Router) {
			r.Get("/steps", wizardcontrollers.Steps(engine))
			r.With(middleware.RateLimit(sessionPolicy, rateStore, logg)).
				Post("/sessions", wizardcontrollers.SessionCreate(sessionService, view, logg))

			r.Route("/sessions/{sessionId}", func(r chi.Router) {
				r.Get("/", wizardcontrollers.SessionFetch(sessionService, view, logg))
				r.Delete("/", wizardcontrollers.SessionEnd(sessionService, logg))
				r.Patch("/fields", wizardcontrollers.SessionUpdateField(sessionService, view, logg))
				r.Post("/counts", wizardcontrollers.SessionAdjustCount(sessionService, view, logg))
				r.Post("/advance", wizardcontrollers.SessionAdvance(sessionService, view, logg))
				r.Post("/retreat", wizardcontrollers.SessionRetreat(sessionService, view, logg))
				r.Post("/jump", wizardcontrollers.SessionJump(sessionService, view, logg))
				r.Get("/handoff", wizardcontrollers.SessionHandoff(sessionService, logg))
			})
		})
	})

	return r
}
