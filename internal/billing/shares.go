// Package billing computes the revenue split between the business and the
// washer for a single order.
package billing

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Fixed per-order charges.
const (
	FixedDeduction = 40.0 // taken off the base price before the split
	SSSFee         = 2.0  // statutory contribution per order
	VacuumFee      = 5.0  // flat fee when the base service includes vacuum
	POSFee         = 5.0  // transaction fee per order
)

// Base split applied to the price remainder after the fixed deduction.
const (
	BusinessBaseRate = 0.7
	WasherBaseRate   = 0.3
)

// Ratio is a business/washer split for one addon.
type Ratio struct {
	Business float64
	Washer   float64
}

// addonRatios holds the per-addon splits. Addons outside this table split
// evenly.
var addonRatios = map[string]Ratio{
	"Wax":           {Business: 0.4, Washer: 0.6},
	"Buffing":       {Business: 0.5, Washer: 0.5},
	"Deep Cleaning": {Business: 0.5, Washer: 0.5},
	"Engine Wash":   {Business: 0.5, Washer: 0.5},
}

var defaultAddonRatio = Ratio{Business: 0.5, Washer: 0.5}

// AddonRatio returns the split for the named addon.
func AddonRatio(name string) Ratio {
	if r, ok := addonRatios[name]; ok {
		return r
	}
	return defaultAddonRatio
}

// Shares is the two-way revenue split for an order.
type Shares struct {
	Business float64
	Washer   float64
}

// CalculateShares splits an order between the business and the washer. The
// base price less the fixed deduction splits 70/30; each selected addon is
// priced from the catalog map and splits by its own ratio. A duplicated
// addon name counts once per occurrence. Addons missing from the catalog
// price at zero. A base price below the fixed deduction legitimately yields
// a negative base share.
func CalculateShares(basePrice float64, addons []string, catalogAddons map[string]float64) Shares {
	rent := basePrice - FixedDeduction
	s := Shares{
		Business: rent * BusinessBaseRate,
		Washer:   rent * WasherBaseRate,
	}

	for _, name := range addons {
		price := catalogAddons[name]
		ratio := AddonRatio(name)
		s.Business += price * ratio.Business
		s.Washer += price * ratio.Washer
	}

	return s
}

// ParseAmount coerces a JSON numeric value (number or numeric string) to a
// float64. Callers must treat a failure as a rejected order, never as zero.
func ParseAmount(n json.Number) (float64, error) {
	if n.String() == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	v, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, n.String())
	}
	return v, nil
}
