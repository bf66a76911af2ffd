package catalog

import (
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/pricing"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db/models"
)

// ItemFromModel extracts the pricing fields of a product.
func ItemFromModel(p *models.Product) pricing.Item {
	if p == nil {
		return pricing.Item{}
	}
	item := pricing.Item{
		RetailPrice:     p.RetailPrice,
		MinWholesaleQty: p.MinWholesaleQty,
	}
	if p.WholesalePrice.Valid {
		wholesale := p.WholesalePrice.Decimal
		item.WholesalePrice = &wholesale
	}
	if len(p.PriceTiers) > 0 {
		item.Tiers = make([]pricing.Tier, 0, len(p.PriceTiers))
		for _, tier := range p.PriceTiers {
			item.Tiers = append(item.Tiers, pricing.Tier{
				Name:        tier.Name,
				MinQuantity: tier.MinQuantity,
				UnitPrice:   tier.UnitPrice,
				Order:       tier.SortOrder,
				Active:      tier.IsActive,
			})
		}
	}
	return item
}
