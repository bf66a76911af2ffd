package stores

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
)

// UpdatePricingConfigInput captures the replacement pricing configuration of a store.
type UpdatePricingConfigInput struct {
	Mode     enums.PricingMode
	Currency enums.Currency
	Tiers    []pricing.Tier
}

// ConfigFromModel maps the persisted configuration into the resolver input.
func ConfigFromModel(m *models.StorePricingConfig) *pricing.Config {
	if m == nil {
		return nil
	}
	cfg := &pricing.Config{
		Mode:     m.Mode,
		Currency: m.Currency,
		Tiers:    make([]pricing.Tier, 0, len(m.Tiers)),
	}
	for _, tier := range m.Tiers {
		cfg.Tiers = append(cfg.Tiers, pricing.Tier{
			Name:        tier.Name,
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
			Order:       tier.SortOrder,
			Active:      tier.IsActive,
		})
	}
	return cfg
}

func toModel(storeID uuid.UUID, mode enums.PricingMode, currency enums.Currency, tiers []pricing.Tier) *models.StorePricingConfig {
	record := &models.StorePricingConfig{
		StoreID:  storeID,
		Mode:     mode,
		Currency: currency,
		Tiers:    make([]models.StorePriceTier, 0, len(tiers)),
	}
	for _, tier := range tiers {
		record.Tiers = append(record.Tiers, models.StorePriceTier{
			StoreID:     storeID,
			Name:        strings.TrimSpace(tier.Name),
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
			SortOrder:   tier.Order,
			IsActive:    tier.Active,
		})
	}
	return record
}
