package catalog

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidDiscount = errors.New("catalog: invalid discount")
	ErrMarginTooLow    = errors.New("catalog: price below minimum margin")
)

// PricingRules are the tunable limits applied to price changes and
// discounts. Defaults suit a grocery storefront; adjust per deployment.
type PricingRules struct {
	// MinMarginPercent is the smallest acceptable margin over cost.
	MinMarginPercent float64

	// MaxDiscountPercent caps percentage discounts.
	MaxDiscountPercent float64
}

// DefaultPricingRules returns the standard storefront limits: 10% minimum
// margin, 50% maximum discount.
func DefaultPricingRules() PricingRules {
	return PricingRules{
		MinMarginPercent:   10,
		MaxDiscountPercent: 50,
	}
}

// ApplyPercentageDiscount reduces price by percent, rounding to the
// nearest cent.
func ApplyPercentageDiscount(priceCents int64, percent float64) (int64, error) {
	if percent < 0 || percent > 100 {
		return 0, fmt.Errorf("%w: %.2f%% out of range", ErrInvalidDiscount, percent)
	}
	discount := int64(math.Round(float64(priceCents) * percent / 100))
	return priceCents - discount, nil
}

// ApplyFixedDiscount reduces price by a fixed amount of cents. The result
// never drops below zero.
func ApplyFixedDiscount(priceCents, amountCents int64) (int64, error) {
	if amountCents < 0 {
		return 0, fmt.Errorf("%w: negative amount", ErrInvalidDiscount)
	}
	if amountCents >= priceCents {
		return 0, nil
	}
	return priceCents - amountCents, nil
}

// MarginPercent returns the margin of price over cost as a percentage of
// the price. A zero price yields zero.
func MarginPercent(costCents, priceCents int64) float64 {
	if priceCents <= 0 {
		return 0
	}
	return float64(priceCents-costCents) / float64(priceCents) * 100
}

// ValidatePrice checks that price keeps at least the minimum margin over
// cost.
func (r PricingRules) ValidatePrice(costCents, priceCents int64) error {
	if priceCents < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidProduct)
	}
	margin := MarginPercent(costCents, priceCents)
	if margin < r.MinMarginPercent {
		return fmt.Errorf("%w: margin %.1f%% below %.1f%%", ErrMarginTooLow, margin, r.MinMarginPercent)
	}
	return nil
}

// ValidateDiscount checks a percentage discount against the cap.
func (r PricingRules) ValidateDiscount(percent float64) error {
	if percent < 0 || percent > r.MaxDiscountPercent {
		return fmt.Errorf("%w: %.2f%% exceeds cap %.2f%%", ErrInvalidDiscount, percent, r.MaxDiscountPercent)
	}
	return nil
}
