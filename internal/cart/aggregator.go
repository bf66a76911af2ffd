package cart

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/enums"
)

// Bundle is a fixed pack of physical units sold as one cart line.
// Composition maps an attribute value (size, color) to the units it contributes.
type Bundle struct {
	Composition map[string]int `json:"composition"`
}

// TotalUnits sums the non-negative sub-quantities of the bundle.
// The sum saturates at math.MaxInt instead of wrapping.
func (b *Bundle) TotalUnits() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, qty := range b.Composition {
		if qty <= 0 {
			continue
		}
		if qty > math.MaxInt-total {
			return math.MaxInt
		}
		total += qty
	}
	return total
}

// Line is one cart entry ready for pricing.
type Line struct {
	ProductID uuid.UUID
	Item      pricing.Item
	Quantity  int
	Bundle    *Bundle
}

// QuotedLine is the priced view of a Line.
type QuotedLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCount int             `json:"unit_count"`
	IsBundle  bool            `json:"is_bundle"`
	Price     pricing.Result  `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Savings   decimal.Decimal `json:"savings"`
}

// Quote is the priced cart. It is recomputed on every request and never stored.
type Quote struct {
	Mode         enums.PricingMode `json:"mode"`
	Currency     enums.Currency    `json:"currency,omitempty"`
	Lines        []QuotedLine      `json:"lines"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	TotalSavings decimal.Decimal   `json:"total_savings"`
	UnitCount    int               `json:"unit_count"`
	LineCount    int               `json:"line_count"`
}

// Aggregate prices every line against cfg. A nil cfg prices everything at retail.
func Aggregate(cfg *pricing.Config, lines []Line) Quote {
	quote := Quote{
		Mode:         enums.PricingModeRetailOnly,
		Lines:        make([]QuotedLine, 0, len(lines)),
		Subtotal:     decimal.Zero,
		TotalSavings: decimal.Zero,
	}
	if cfg != nil {
		quote.Currency = cfg.Currency
		if cfg.Mode.IsValid() {
			quote.Mode = cfg.Mode
		}
	}

	for _, line := range lines {
		quoted := quoteLine(cfg, line)
		quote.Lines = append(quote.Lines, quoted)
		quote.Subtotal = quote.Subtotal.Add(quoted.LineTotal)
		quote.TotalSavings = quote.TotalSavings.Add(quoted.Savings)
		quote.UnitCount += quoted.UnitCount
	}
	quote.LineCount = len(quote.Lines)

	return quote
}

func quoteLine(cfg *pricing.Config, line Line) QuotedLine {
	if line.Bundle != nil {
		return quoteBundle(cfg, line)
	}

	res := pricing.Resolve(cfg, line.Item, line.Quantity)
	return QuotedLine{
		ProductID: line.ProductID,
		Quantity:  res.Quantity,
		UnitCount: res.Quantity,
		Price:     res,
		LineTotal: res.Total(),
		Savings:   res.Savings,
	}
}

// quoteBundle resolves the unit price at the bundle's physical unit count and
// charges every unit, while the line itself always counts as a single purchase.
func quoteBundle(cfg *pricing.Config, line Line) QuotedLine {
	units := line.Bundle.TotalUnits()
	res := pricing.Resolve(cfg, line.Item, units)

	quoted := QuotedLine{
		ProductID: line.ProductID,
		Quantity:  1,
		UnitCount: units,
		IsBundle:  true,
		Price:     res,
		LineTotal: decimal.Zero,
		Savings:   decimal.Zero,
	}
	if units > 0 {
		quoted.LineTotal = res.UnitPrice.Mul(decimal.NewFromInt(int64(units)))
		quoted.Savings = res.Savings
	}
	return quoted
}
