package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records price resolution activity.
type PricingMetrics struct {
	quoteDuration *prometheus.HistogramVec
	resolutions   *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	cache         *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_quote_duration_seconds",
		Help:    "Duration of price quotes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_resolutions_total",
		Help: "Resolved prices by effective pricing mode.",
	}, []string{"mode"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_config_fallbacks_total",
		Help: "Quotes priced at retail because the pricing configuration was unavailable.",
	}, []string{"reason"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_config_cache_total",
		Help: "Pricing configuration cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(quoteDuration, resolutions, fallbacks, cache)
	return &PricingMetrics{
		quoteDuration: quoteDuration,
		resolutions:   resolutions,
		fallbacks:     fallbacks,
		cache:         cache,
	}
}

// ObserveQuote records the duration of a quote of the given kind (cart, product).
func (m *PricingMetrics) ObserveQuote(kind string, duration time.Duration) {
	if m == nil || m.quoteDuration == nil {
		return
	}
	m.quoteDuration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncResolution counts one resolved price under mode.
func (m *PricingMetrics) IncResolution(mode string) {
	if m == nil || m.resolutions == nil {
		return
	}
	m.resolutions.WithLabelValues(normalizeLabel(mode)).Inc()
}

// AddResolutions counts n resolved prices under mode.
func (m *PricingMetrics) AddResolutions(mode string, n int) {
	if m == nil || m.resolutions == nil || n <= 0 {
		return
	}
	m.resolutions.WithLabelValues(normalizeLabel(mode)).Add(float64(n))
}

// IncConfigFallback counts a quote that degraded to retail pricing.
func (m *PricingMetrics) IncConfigFallback(reason string) {
	if m == nil || m.fallbacks == nil {
		return
	}
	m.fallbacks.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncCacheHit counts a pricing configuration cache hit.
func (m *PricingMetrics) IncCacheHit() {
	m.incCache("hit")
}

// IncCacheMiss counts a pricing configuration cache miss.
func (m *PricingMetrics) IncCacheMiss() {
	m.incCache("miss")
}

// IncCacheError counts a failed cache read or write.
func (m *PricingMetrics) IncCacheError() {
	m.incCache("error")
}

func (m *PricingMetrics) incCache(result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
