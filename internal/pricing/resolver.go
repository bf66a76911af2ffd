package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
)

// Resolve computes the effective price of item at the requested quantity.
//
// Resolve is total: a nil configuration, an unknown mode or missing wholesale data
// all degrade to the retail price instead of failing, so pricing never blocks a cart.
// Quantities below 1 are treated as 1.
func Resolve(cfg *Config, item Item, quantity int) Result {
	qty := normalizeQuantity(quantity)
	retail := nonNegative(item.RetailPrice)

	if cfg == nil {
		return retailResult(enums.PricingModeRetailOnly, retail, qty)
	}

	switch cfg.Mode {
	case enums.PricingModeRetailOnly:
		return retailResult(cfg.Mode, retail, qty)
	case enums.PricingModeWholesaleOnly:
		return resolveWholesaleOnly(retail, item.WholesalePrice, qty)
	case enums.PricingModeSimpleWholesale:
		return resolveSimpleWholesale(retail, item.WholesalePrice, item.MinWholesaleQty, qty)
	case enums.PricingModeGradualWholesale:
		return resolveGradual(retail, tiersFor(cfg, item), qty)
	default:
		return retailResult(enums.PricingModeRetailOnly, retail, qty)
	}
}

func retailResult(mode enums.PricingMode, retail decimal.Decimal, qty int) Result {
	return Result{
		Mode:      mode,
		Quantity:  qty,
		UnitPrice: retail,
		TierName:  LabelRetail,
		Savings:   decimal.Zero,
	}
}

// wholesale_only never compares against retail, so savings stay at zero.
func resolveWholesaleOnly(retail decimal.Decimal, wholesale *decimal.Decimal, qty int) Result {
	price := retail
	if wholesale != nil {
		price = nonNegative(*wholesale)
	}
	return Result{
		Mode:      enums.PricingModeWholesaleOnly,
		Quantity:  qty,
		UnitPrice: price,
		TierName:  LabelWholesale,
		Savings:   decimal.Zero,
	}
}

func resolveSimpleWholesale(retail decimal.Decimal, wholesale *decimal.Decimal, minQty, qty int) Result {
	minQty = normalizeQuantity(minQty)
	if wholesale == nil {
		return retailResult(enums.PricingModeSimpleWholesale, retail, qty)
	}

	price := nonNegative(*wholesale)
	if qty >= minQty {
		return Result{
			Mode:      enums.PricingModeSimpleWholesale,
			Quantity:  qty,
			UnitPrice: price,
			TierName:  LabelWholesale,
			Savings:   savingsFor(retail, price, qty),
		}
	}

	result := retailResult(enums.PricingModeSimpleWholesale, retail, qty)
	result.NextTier = newHint(retail, price, LabelWholesale, minQty, qty)
	return result
}

func resolveGradual(retail decimal.Decimal, tiers []Tier, qty int) Result {
	selected, ok := selectTier(tiers, qty)
	if !ok {
		result := retailResult(enums.PricingModeGradualWholesale, retail, qty)
		if next, found := nextTier(tiers, qty, nil); found {
			result.NextTier = newHint(retail, nonNegative(next.UnitPrice), tierLabel(next), minQuantity(next), qty)
		}
		return result
	}

	price := nonNegative(selected.UnitPrice)
	result := Result{
		Mode:      enums.PricingModeGradualWholesale,
		Quantity:  qty,
		UnitPrice: price,
		TierName:  tierLabel(selected),
		Savings:   savingsFor(retail, price, qty),
	}
	if next, found := nextTier(tiers, qty, &price); found {
		result.NextTier = newHint(price, nonNegative(next.UnitPrice), tierLabel(next), minQuantity(next), qty)
	}
	return result
}

// newHint measures the unlockable savings against the price currently paid.
func newHint(current, target decimal.Decimal, name string, threshold, qty int) *Hint {
	unitSavings := nonNegative(current.Sub(target))
	return &Hint{
		QuantityNeeded:       threshold - qty,
		PotentialUnitSavings: unitSavings,
		PotentialSavings:     unitSavings.Mul(decimal.NewFromInt(int64(threshold))),
		TierName:             name,
		UnitPrice:            target,
	}
}

func savingsFor(retail, price decimal.Decimal, qty int) decimal.Decimal {
	return nonNegative(retail.Sub(price)).Mul(decimal.NewFromInt(int64(qty)))
}

func tiersFor(cfg *Config, item Item) []Tier {
	if len(item.Tiers) > 0 {
		return item.Tiers
	}
	return cfg.Tiers
}

func normalizeQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

func nonNegative(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}
