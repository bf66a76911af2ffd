package enums

import "fmt"

// PricingMode selects how a store prices its catalog for a given quantity.
type PricingMode string

const (
	PricingModeRetailOnly       PricingMode = "retail_only"
	PricingModeWholesaleOnly    PricingMode = "wholesale_only"
	PricingModeSimpleWholesale  PricingMode = "simple_wholesale"
	PricingModeGradualWholesale PricingMode = "gradual_wholesale"
)

var validPricingModes = []PricingMode{
	PricingModeRetailOnly,
	PricingModeWholesaleOnly,
	PricingModeSimpleWholesale,
	PricingModeGradualWholesale,
}

// String implements fmt.Stringer.
func (m PricingMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known PricingMode.
func (m PricingMode) IsValid() bool {
	for _, candidate := range validPricingModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParsePricingMode converts raw input into a PricingMode.
func ParsePricingMode(value string) (PricingMode, error) {
	for _, candidate := range validPricingModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing mode %q", value)
}
