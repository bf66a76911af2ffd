package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
)

// Labels used when the resolved price does not come from a named tier.
const (
	LabelRetail    = "Retail"
	LabelWholesale = "Wholesale"
)

// Tier is a quantity threshold and the unit price it unlocks in gradual wholesale mode.
type Tier struct {
	Name        string          `json:"name"`
	MinQuantity int             `json:"min_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Order       int             `json:"order"`
	Active      bool            `json:"active"`
}

// Config is the store-level pricing configuration consumed by Resolve.
type Config struct {
	Mode     enums.PricingMode `json:"mode"`
	Currency enums.Currency    `json:"currency,omitempty"`
	Tiers    []Tier            `json:"tiers"`
}

// Item is the pricing subset of a catalog item.
// Tiers, when present, replace the store tiers for this item.
type Item struct {
	RetailPrice     decimal.Decimal
	WholesalePrice  *decimal.Decimal
	MinWholesaleQty int
	Tiers           []Tier
}

// Hint describes how much more quantity unlocks a better unit price.
type Hint struct {
	QuantityNeeded       int             `json:"quantity_needed"`
	PotentialUnitSavings decimal.Decimal `json:"potential_unit_savings"`
	PotentialSavings     decimal.Decimal `json:"potential_savings"`
	TierName             string          `json:"tier_name"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
}

// Result is the resolved price for one line. It is recomputed on every call and never persisted.
type Result struct {
	Mode      enums.PricingMode `json:"mode"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	TierName  string            `json:"tier_name"`
	Savings   decimal.Decimal   `json:"savings"`
	NextTier  *Hint             `json:"next_tier,omitempty"`
}

// Total returns UnitPrice multiplied by the resolved quantity.
func (r Result) Total() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}
