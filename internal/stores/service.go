package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/metrics"
)

const defaultCacheTTL = 5 * time.Minute

type configRepository interface {
	FindPricingConfig(ctx context.Context, storeID uuid.UUID) (*models.StorePricingConfig, error)
	ReplacePricingConfigWithTx(tx *gorm.DB, cfg *models.StorePricingConfig) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type configCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	PricingConfigKey(storeID string) string
}

// Service exposes store pricing configuration operations.
type Service interface {
	GetPricingConfig(ctx context.Context, storeID uuid.UUID) (*pricing.Config, error)
	UpdatePricingConfig(ctx context.Context, storeID uuid.UUID, input UpdatePricingConfigInput) (*pricing.Config, error)
}

// ServiceParams bundles the dependencies of the pricing configuration service.
// Cache and Metrics are optional.
type ServiceParams struct {
	Repo            configRepository
	Tx              txRunner
	Cache           configCache
	CacheTTL        time.Duration
	DefaultCurrency enums.Currency
	Logger          *logger.Logger
	Metrics         *metrics.PricingMetrics
}

type service struct {
	repo            configRepository
	tx              txRunner
	cache           configCache
	cacheTTL        time.Duration
	defaultCurrency enums.Currency
	logg            *logger.Logger
	metrics         *metrics.PricingMetrics
}

// NewService builds the pricing configuration service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("pricing config repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	currency := params.DefaultCurrency
	if !currency.IsValid() {
		currency = enums.CurrencyBRL
	}
	return &service{
		repo:            params.Repo,
		tx:              params.Tx,
		cache:           params.Cache,
		cacheTTL:        ttl,
		defaultCurrency: currency,
		logg:            params.Logger,
		metrics:         params.Metrics,
	}, nil
}

// GetPricingConfig returns the configuration of the store, serving from cache when possible.
func (s *service) GetPricingConfig(ctx context.Context, storeID uuid.UUID) (*pricing.Config, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}

	if cached, ok := s.readCache(ctx, storeID); ok {
		return cached, nil
	}

	record, err := s.repo.FindPricingConfig(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pricing config not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing config")
	}

	cfg := ConfigFromModel(record)
	s.writeCache(ctx, storeID, cfg)
	return cfg, nil
}

// UpdatePricingConfig validates and replaces the configuration of the store.
func (s *service) UpdatePricingConfig(ctx context.Context, storeID uuid.UUID, input UpdatePricingConfigInput) (*pricing.Config, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}

	currency, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	record := toModel(storeID, input.Mode, currency, input.Tiers)
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.ReplacePricingConfigWithTx(tx, record)
	}); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "pricing config changed concurrently")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save pricing config")
	}

	s.invalidateCache(ctx, storeID)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"store_id":   storeID.String(),
		"mode":       input.Mode.String(),
		"tier_count": len(record.Tiers),
	})
	s.logg.Info(logCtx, "pricing config updated")

	return ConfigFromModel(record), nil
}

func (s *service) validateInput(input UpdatePricingConfigInput) (enums.Currency, error) {
	details := map[string]string{}

	if !input.Mode.IsValid() {
		details["mode"] = "must be one of retail_only, wholesale_only, simple_wholesale, gradual_wholesale"
	}

	currency := input.Currency
	if currency == "" {
		currency = s.defaultCurrency
	} else if !currency.IsValid() {
		details["currency"] = "is not supported"
	}

	activeThresholds := map[int]int{}
	for i, tier := range input.Tiers {
		field := fmt.Sprintf("tiers[%d]", i)
		if strings.TrimSpace(tier.Name) == "" {
			details[field+".name"] = "is required"
		}
		if tier.MinQuantity < 1 {
			details[field+".min_quantity"] = "must be at least 1"
		}
		if tier.UnitPrice.IsNegative() {
			details[field+".unit_price"] = "must not be negative"
		}
		if !tier.Active {
			continue
		}
		if prev, seen := activeThresholds[tier.MinQuantity]; seen {
			details[field+".min_quantity"] = fmt.Sprintf("duplicates active tiers[%d]", prev)
			continue
		}
		activeThresholds[tier.MinQuantity] = i
	}

	if len(details) > 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing config").WithDetails(details)
	}
	return currency, nil
}

func (s *service) readCache(ctx context.Context, storeID uuid.UUID) (*pricing.Config, bool) {
	if s.cache == nil {
		return nil, false
	}
	var cached pricing.Config
	found, err := s.cache.GetJSON(ctx, s.cache.PricingConfigKey(storeID.String()), &cached)
	if err != nil {
		s.metrics.IncCacheError()
		s.warn(ctx, storeID, "pricing config cache read failed", err)
		return nil, false
	}
	if !found {
		s.metrics.IncCacheMiss()
		return nil, false
	}
	s.metrics.IncCacheHit()
	return &cached, true
}

func (s *service) writeCache(ctx context.Context, storeID uuid.UUID, cfg *pricing.Config) {
	if s.cache == nil || cfg == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, s.cache.PricingConfigKey(storeID.String()), cfg, s.cacheTTL); err != nil {
		s.metrics.IncCacheError()
		s.warn(ctx, storeID, "pricing config cache write failed", err)
	}
}

func (s *service) invalidateCache(ctx context.Context, storeID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.PricingConfigKey(storeID.String())); err != nil {
		s.metrics.IncCacheError()
		s.warn(ctx, storeID, "pricing config cache invalidation failed", err)
	}
}

func (s *service) warn(ctx context.Context, storeID uuid.UUID, msg string, err error) {
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"store_id": storeID.String(),
		"error":    err.Error(),
	})
	s.logg.Warn(logCtx, msg)
}
