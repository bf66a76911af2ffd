package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/catalog"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/metrics"
)

const (
	maxCartLines    = 200
	maxLineQuantity = 100000
)

type productLister interface {
	ListProducts(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]models.Product, error)
}

type configLoader interface {
	Load(ctx context.Context, storeID uuid.UUID) *pricing.Config
}

// Service prices carts against the current catalog and store configuration.
type Service interface {
	QuoteCart(ctx context.Context, storeID uuid.UUID, input QuoteCartInput) (*Quote, error)
}

// ServiceParams bundles the cart quote dependencies. Metrics is optional.
type ServiceParams struct {
	Products productLister
	Configs  configLoader
	Logger   *logger.Logger
	Metrics  *metrics.PricingMetrics
}

type service struct {
	products productLister
	configs  configLoader
	logg     *logger.Logger
	metrics  *metrics.PricingMetrics
}

// NewService builds a cart quote service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("product lister required")
	}
	if params.Configs == nil {
		return nil, fmt.Errorf("config loader required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		products: params.Products,
		configs:  params.Configs,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// QuoteCart loads every referenced product once, then prices all lines against a
// single snapshot of the store configuration.
func (s *service) QuoteCart(ctx context.Context, storeID uuid.UUID, input QuoteCartInput) (*Quote, error) {
	started := time.Now()

	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ids := uniqueProductIDs(input.Items)
	products, err := s.products.ListProducts(ctx, storeID, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]Line, 0, len(input.Items))
	for i, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").WithDetails(map[string]any{
				"product_id": item.ProductID.String(),
			})
		}
		if !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available").WithDetails(map[string]string{
				fmt.Sprintf("items[%d].product_id", i): "product is inactive",
			})
		}
		lines = append(lines, Line{
			ProductID: product.ID,
			Item:      catalog.ItemFromModel(product),
			Quantity:  item.Quantity,
			Bundle:    item.Bundle,
		})
	}

	cfg := s.configs.Load(ctx, storeID)
	quote := Aggregate(cfg, lines)

	s.metrics.AddResolutions(quote.Mode.String(), quote.LineCount)
	s.metrics.ObserveQuote("cart", time.Since(started))

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"store_id":   storeID.String(),
		"mode":       quote.Mode.String(),
		"line_count": quote.LineCount,
		"unit_count": quote.UnitCount,
		"subtotal":   quote.Subtotal.StringFixed(2),
	})
	s.logg.Debug(logCtx, "cart quoted")

	return &quote, nil
}

func validateInput(input QuoteCartInput) error {
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}
	if len(input.Items) > maxCartLines {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart has too many items").WithDetails(map[string]any{
			"max": maxCartLines,
		})
	}

	details := map[string]string{}
	for i, item := range input.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == uuid.Nil {
			details[field+".product_id"] = "is required"
		}
		if !item.isBundle() {
			if item.Quantity < 1 {
				details[field+".quantity"] = "must be at least 1"
			} else if item.Quantity > maxLineQuantity {
				details[field+".quantity"] = fmt.Sprintf("must be at most %d", maxLineQuantity)
			}
			continue
		}
		for key, qty := range item.Bundle.Composition {
			entry := fmt.Sprintf("%s.bundle.composition.%s", field, key)
			switch {
			case qty < 0:
				details[entry] = "must not be negative"
			case qty > maxLineQuantity:
				details[entry] = fmt.Sprintf("must be at most %d", maxLineQuantity)
			}
		}
		units := item.Bundle.TotalUnits()
		if units < 1 {
			details[field+".bundle"] = "must contain at least one unit"
		} else if units > maxLineQuantity {
			details[field+".bundle"] = fmt.Sprintf("must contain at most %d units", maxLineQuantity)
		}
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid cart").WithDetails(details)
	}
	return nil
}

func uniqueProductIDs(items []QuoteCartItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
