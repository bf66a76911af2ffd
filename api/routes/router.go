package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/controllers"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/middleware"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/cart"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/catalog"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/stores"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/config"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	pricingMetrics *metrics.PricingMetrics,
	readiness map[string]controllers.Pinger,
	storeService stores.Service,
	catalogService catalog.Service,
	cartService cart.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/pricing/resolve", controllers.PricingResolve(logg, pricingMetrics))

		r.Group(func(r chi.Router) {
			r.Use(middleware.StoreContext(logg))

			r.Get("/pricing/config", controllers.PricingConfigGet(storeService, logg))
			r.Put("/pricing/config", controllers.PricingConfigUpdate(storeService, logg))
			r.Get("/products/{productId}/price", controllers.ProductPrice(catalogService, logg))
			r.Post("/cart/quote", controllers.CartQuote(cartService, logg))
		})
	})

	return r
}
