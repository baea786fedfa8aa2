// Package summary recomputes shift summaries from the orders of one
// (incharge, date, shift) key and writes them back as an idempotent upsert.
package summary

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cetadcco/carwash-pos/internal/billing"
	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/models"
)

// ErrNoOrders means the requested shift has no orders to summarize. This is
// an expected business state ("nothing to summarize"), not a server error.
var ErrNoOrders = errors.New("no orders for shift")

// FixedWage is the flat per-shift wage deducted from the grand total.
const FixedWage = 400.0

// Service aggregates orders into shift summaries.
type Service struct {
	orders    db.OrderCollection
	vehicles  db.VehicleCollection
	summaries db.SummaryCollection

	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

// NewService creates a new summary service.
func NewService(orders db.OrderCollection, vehicles db.VehicleCollection, summaries db.SummaryCollection) *Service {
	return &Service{
		orders:    orders,
		vehicles:  vehicles,
		summaries: summaries,
		keys:      make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex serializing upserts for one summary key, so two
// concurrent recomputes of the same shift cannot interleave their writes.
func (s *Service) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.keys[key]
	if !ok {
		l = &sync.Mutex{}
		s.keys[key] = l
	}
	return l
}

// Recompute derives the summary for (incharge, date, shift) from scratch
// and upserts it. Every total is recomputed from the matched orders and the
// current vehicle catalog; nothing is carried over from a previous summary,
// so calling it twice with the same underlying orders stores identical
// results. Returns ErrNoOrders, writing nothing, when the key matches no
// orders.
func (s *Service) Recompute(ctx context.Context, incharge, date, shiftLabel string, otherIncome, expenses []models.LineItem) (*models.ShiftSummary, error) {
	orders, err := s.orders.FindShiftOrders(ctx, incharge, shiftLabel, date)
	if err != nil {
		return nil, fmt.Errorf("query shift orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}

	n := float64(len(orders))

	result := models.ShiftSummary{
		InchargeName: incharge,
		Date:         date,
		Shift:        shiftLabel,
		FortyX:       n * billing.FixedDeduction,
		PosPayment:   n * billing.POSFee,
		TotalSSS:     n * billing.SSSFee,
		Addons:       map[string]float64{},
		OtherIncome:  otherIncome,
		Expenses:     expenses,
	}

	for _, order := range orders {
		// The stored business share is trusted as computed at order
		// creation; addon totals are re-priced from the current catalog.
		result.TotalGrossSales += order.SixbShares
		result.TotalVac += order.Vac

		prices, err := s.vehicles.AddonPrices(ctx, order.VehicleType)
		if err != nil {
			return nil, fmt.Errorf("addon prices for %s: %w", order.VehicleType, err)
		}
		for _, name := range order.Addons {
			price := prices[name]
			result.TotalAddons += price
			result.Addons[name] += price
		}
	}

	for _, item := range otherIncome {
		result.TotalOtherIncome += item.Amount
	}
	for _, item := range expenses {
		result.TotalExpenses += item.Amount
	}

	result.GrandTotal = result.TotalGrossSales +
		result.FortyX +
		result.TotalAddons +
		result.TotalOtherIncome -
		result.TotalExpenses -
		FixedWage -
		result.PosPayment -
		result.TotalVac

	key := incharge + "|" + date + "|" + shiftLabel
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if err := s.summaries.UpsertSummary(ctx, result); err != nil {
		return nil, fmt.Errorf("upsert summary: %w", err)
	}
	return &result, nil
}
