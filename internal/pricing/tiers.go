package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// selectTier returns the active tier with the largest threshold met by qty.
// Equal thresholds fall back to the lowest Order, then to input position.
func selectTier(tiers []Tier, qty int) (Tier, bool) {
	var selected Tier
	found := false
	for _, tier := range tiers {
		if !tier.Active || minQuantity(tier) > qty {
			continue
		}
		if !found || betterMatch(tier, selected) {
			selected = tier
			found = true
		}
	}
	return selected, found
}

func betterMatch(candidate, current Tier) bool {
	if minQuantity(candidate) != minQuantity(current) {
		return minQuantity(candidate) > minQuantity(current)
	}
	return candidate.Order < current.Order
}

// nextTier returns the active tier with the smallest threshold above qty.
// When below is set, only tiers priced strictly under it qualify.
func nextTier(tiers []Tier, qty int, below *decimal.Decimal) (Tier, bool) {
	var next Tier
	found := false
	for _, tier := range tiers {
		if !tier.Active || minQuantity(tier) <= qty {
			continue
		}
		if below != nil && !nonNegative(tier.UnitPrice).LessThan(*below) {
			continue
		}
		if !found || nearerTier(tier, next) {
			next = tier
			found = true
		}
	}
	return next, found
}

func nearerTier(candidate, current Tier) bool {
	if minQuantity(candidate) != minQuantity(current) {
		return minQuantity(candidate) < minQuantity(current)
	}
	return candidate.Order < current.Order
}

func minQuantity(tier Tier) int {
	return normalizeQuantity(tier.MinQuantity)
}

func tierLabel(tier Tier) string {
	if name := strings.TrimSpace(tier.Name); name != "" {
		return name
	}
	return fmt.Sprintf("%d+ units", minQuantity(tier))
}

// SortTiers returns a copy of tiers ordered by ascending threshold, then by Order.
func SortTiers(tiers []Tier) []Tier {
	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return nearerTier(sorted[i], sorted[j])
	})
	return sorted
}
