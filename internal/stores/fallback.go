package stores

import (
	"context"

	"github.com/google/uuid"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/metrics"
)

const (
	fallbackReasonNotFound    = "not_found"
	fallbackReasonError       = "error"
	fallbackReasonInvalidMode = "invalid_mode"
)

type configGetter interface {
	GetPricingConfig(ctx context.Context, storeID uuid.UUID) (*pricing.Config, error)
}

// FallbackLoader serves pricing configurations to read paths that must never fail.
// Any lookup failure yields a nil configuration, which prices at retail.
type FallbackLoader struct {
	configs configGetter
	logg    *logger.Logger
	metrics *metrics.PricingMetrics
}

// NewFallbackLoader wraps configs. logg and m may be nil.
func NewFallbackLoader(configs configGetter, logg *logger.Logger, m *metrics.PricingMetrics) *FallbackLoader {
	return &FallbackLoader{configs: configs, logg: logg, metrics: m}
}

// Load returns the store configuration or nil when it cannot be obtained.
func (l *FallbackLoader) Load(ctx context.Context, storeID uuid.UUID) *pricing.Config {
	if l == nil || l.configs == nil {
		return nil
	}
	cfg, err := l.configs.GetPricingConfig(ctx, storeID)
	if err == nil {
		if cfg != nil && !cfg.Mode.IsValid() {
			l.metrics.IncConfigFallback(fallbackReasonInvalidMode)
			l.warn(ctx, storeID, map[string]any{"mode": cfg.Mode.String()}, "pricing config has unknown mode, using retail prices")
		}
		return cfg
	}

	if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		l.metrics.IncConfigFallback(fallbackReasonNotFound)
		return nil
	}

	l.metrics.IncConfigFallback(fallbackReasonError)
	l.warn(ctx, storeID, map[string]any{"error": err.Error()}, "pricing config unavailable, using retail prices")
	return nil
}

func (l *FallbackLoader) warn(ctx context.Context, storeID uuid.UUID, fields map[string]any, msg string) {
	if l.logg == nil {
		return
	}
	fields["store_id"] = storeID.String()
	l.logg.Warn(l.logg.WithFields(ctx, fields), msg)
}
