package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/metrics"
)

const maxQuoteQuantity = 100000

type productReader interface {
	GetProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
}

type configLoader interface {
	Load(ctx context.Context, storeID uuid.UUID) *pricing.Config
}

// ProductPrice is the storefront view of a product priced at a quantity.
type ProductPrice struct {
	ProductID       uuid.UUID         `json:"product_id"`
	SKU             string            `json:"sku"`
	Name            string            `json:"name"`
	Currency        enums.Currency    `json:"currency,omitempty"`
	RetailPrice     decimal.Decimal   `json:"retail_price"`
	WholesalePrice  *decimal.Decimal  `json:"wholesale_price,omitempty"`
	MinWholesaleQty int               `json:"min_wholesale_qty"`
	Tiers           []pricing.Tier    `json:"tiers,omitempty"`
	Price           pricing.Result    `json:"price"`
	Total           decimal.Decimal   `json:"total"`
	Mode            enums.PricingMode `json:"mode"`
}

// Service exposes catalog pricing reads.
type Service interface {
	QuoteProductPrice(ctx context.Context, storeID, productID uuid.UUID, quantity int) (*ProductPrice, error)
}

type service struct {
	products productReader
	configs  configLoader
	metrics  *metrics.PricingMetrics
}

// NewService builds a catalog pricing service. m may be nil.
func NewService(products productReader, configs configLoader, m *metrics.PricingMetrics) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if configs == nil {
		return nil, fmt.Errorf("config loader required")
	}
	return &service{products: products, configs: configs, metrics: m}, nil
}

// QuoteProductPrice resolves the price of one product at quantity, including the next-tier hint.
func (s *service) QuoteProductPrice(ctx context.Context, storeID, productID uuid.UUID, quantity int) (*ProductPrice, error) {
	started := time.Now()

	if storeID == uuid.Nil || productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id and product id are required")
	}
	if quantity > maxQuoteQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity is too large").WithDetails(map[string]any{
			"field": "quantity",
			"max":   maxQuoteQuantity,
		})
	}

	product, err := s.products.GetProduct(ctx, storeID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	cfg := s.configs.Load(ctx, storeID)
	item := ItemFromModel(product)
	res := pricing.Resolve(cfg, item, quantity)

	out := &ProductPrice{
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		RetailPrice:     item.RetailPrice,
		WholesalePrice:  item.WholesalePrice,
		MinWholesaleQty: item.MinWholesaleQty,
		Price:           res,
		Total:           res.Total(),
		Mode:            res.Mode,
	}
	if cfg != nil {
		out.Currency = cfg.Currency
		if res.Mode == enums.PricingModeGradualWholesale {
			tiers := item.Tiers
			if len(tiers) == 0 {
				tiers = cfg.Tiers
			}
			out.Tiers = pricing.SortTiers(activeTiers(tiers))
		}
	}

	s.metrics.IncResolution(res.Mode.String())
	s.metrics.ObserveQuote("product", time.Since(started))
	return out, nil
}

func activeTiers(tiers []pricing.Tier) []pricing.Tier {
	out := make([]pricing.Tier, 0, len(tiers))
	for _, tier := range tiers {
		if tier.Active {
			out = append(out, tier)
		}
	}
	return out
}
