package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/responses"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/validators"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/stores"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
	pkgerrors "github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/errors"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/metrics"
)

const (
	maxQuantity = 100000
	maxTierName = 64
)

type tierPayload struct {
	Name        string          `json:"name" validate:"required,max=64"`
	MinQuantity int             `json:"min_quantity" validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Order       int             `json:"order"`
	Active      *bool           `json:"active"`
}

func (p tierPayload) toTier() pricing.Tier {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return pricing.Tier{
		Name:        validators.SanitizeString(p.Name, maxTierName),
		MinQuantity: p.MinQuantity,
		UnitPrice:   p.UnitPrice,
		Order:       p.Order,
		Active:      active,
	}
}

func toTiers(payloads []tierPayload) []pricing.Tier {
	tiers := make([]pricing.Tier, 0, len(payloads))
	for _, p := range payloads {
		tiers = append(tiers, p.toTier())
	}
	return tiers
}

type resolveConfigPayload struct {
	Mode  string        `json:"mode" validate:"omitempty,oneof=retail_only wholesale_only simple_wholesale gradual_wholesale"`
	Tiers []tierPayload `json:"tiers" validate:"dive"`
}

type resolveItemPayload struct {
	RetailPrice     decimal.Decimal  `json:"retail_price"`
	WholesalePrice  *decimal.Decimal `json:"wholesale_price"`
	MinWholesaleQty int              `json:"min_wholesale_qty" validate:"gte=0"`
	Tiers           []tierPayload    `json:"tiers" validate:"dive"`
}

type resolvePriceRequest struct {
	Config   *resolveConfigPayload `json:"config"`
	Item     resolveItemPayload    `json:"item"`
	Quantity int                   `json:"quantity" validate:"max=100000"`
}

func (req resolvePriceRequest) toArgs() (*pricing.Config, pricing.Item) {
	item := pricing.Item{
		RetailPrice:     req.Item.RetailPrice,
		WholesalePrice:  req.Item.WholesalePrice,
		MinWholesaleQty: req.Item.MinWholesaleQty,
	}
	if len(req.Item.Tiers) > 0 {
		item.Tiers = toTiers(req.Item.Tiers)
	}
	if req.Config == nil || req.Config.Mode == "" {
		return nil, item
	}
	return &pricing.Config{
		Mode:  enums.PricingMode(req.Config.Mode),
		Tiers: toTiers(req.Config.Tiers),
	}, item
}

type resolvePriceResponse struct {
	pricing.Result
	Total decimal.Decimal `json:"total"`
}

// PricingResolve prices an item against a configuration supplied in the body.
// It touches no storage and serves previews in the admin UI.
func PricingResolve(logg *logger.Logger, m *metrics.PricingMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload resolvePriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg, item := payload.toArgs()
		res := pricing.Resolve(cfg, item, payload.Quantity)
		m.IncResolution(res.Mode.String())

		responses.WriteSuccess(w, resolvePriceResponse{Result: res, Total: res.Total()})
	}
}

type pricingConfigResponse struct {
	Mode     enums.PricingMode `json:"mode"`
	Currency enums.Currency    `json:"currency"`
	Tiers    []pricing.Tier    `json:"tiers"`
}

func newPricingConfigResponse(cfg *pricing.Config) pricingConfigResponse {
	resp := pricingConfigResponse{Mode: cfg.Mode, Currency: cfg.Currency, Tiers: pricing.SortTiers(cfg.Tiers)}
	if resp.Tiers == nil {
		resp.Tiers = []pricing.Tier{}
	}
	return resp
}

// PricingConfigGet returns the pricing configuration of the current store.
func PricingConfigGet(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing config service unavailable"))
			return
		}
		storeID, ok := requireStore(w, r, logg)
		if !ok {
			return
		}

		cfg, err := svc.GetPricingConfig(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPricingConfigResponse(cfg))
	}
}

type updatePricingConfigRequest struct {
	Mode     string        `json:"mode" validate:"required,oneof=retail_only wholesale_only simple_wholesale gradual_wholesale"`
	Currency string        `json:"currency" validate:"omitempty,len=3"`
	Tiers    []tierPayload `json:"tiers" validate:"max=50,dive"`
}

// PricingConfigUpdate replaces the pricing configuration of the current store.
func PricingConfigUpdate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing config service unavailable"))
			return
		}
		storeID, ok := requireStore(w, r, logg)
		if !ok {
			return
		}

		var payload updatePricingConfigRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg, err := svc.UpdatePricingConfig(r.Context(), storeID, stores.UpdatePricingConfigInput{
			Mode:     enums.PricingMode(payload.Mode),
			Currency: enums.Currency(payload.Currency),
			Tiers:    toTiers(payload.Tiers),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPricingConfigResponse(cfg))
	}
}
