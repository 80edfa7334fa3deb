package domain

import (
	"fmt"
	"math"
	"time"

	"marketplace-settlement/pkg/apperror"
)

// CommissionType distinguishes percentage commissions from flat amounts.
type CommissionType string

const (
	CommissionPercentage CommissionType = "percentage"
	CommissionAmount     CommissionType = "amount"
)

// CommissionRule is one band of a restaurant's tiered commission schedule.
// The band matches order amounts in [MinOrderAmount, MaxOrderAmount);
// a nil MaxOrderAmount means "and above".
type CommissionRule struct {
	Type           CommissionType `json:"type"`
	Value          float64        `json:"value"` // Percent [0,100] or a flat amount in smallest unit
	MinOrderAmount int64          `json:"min_order_amount"`
	MaxOrderAmount *int64         `json:"max_order_amount,omitempty"`
}

// Matches reports whether the band contains the order amount.
func (r CommissionRule) Matches(orderAmount int64) bool {
	if orderAmount < r.MinOrderAmount {
		return false
	}
	return r.MaxOrderAmount == nil || orderAmount < *r.MaxOrderAmount
}

// DefaultCommission is the fallback applied when no band matches.
type DefaultCommission struct {
	Type  CommissionType `json:"type"`
	Value float64        `json:"value"`
}

// CommissionConfig is a restaurant's full commission setup.
type CommissionConfig struct {
	RestaurantID      string             `json:"restaurant_id"`
	RestaurantName    string             `json:"restaurant_name"`
	IsActive          bool               `json:"is_active"`
	Rules             []CommissionRule   `json:"rules"`
	DefaultCommission *DefaultCommission `json:"default_commission,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// Validate enforces the write-time rules: well-formed bounds and values,
// and no overlapping bands. Overlaps are rejected here rather than resolved
// by list order at calculation time.
func (c *CommissionConfig) Validate() error {
	for i, r := range c.Rules {
		if r.Type != CommissionPercentage && r.Type != CommissionAmount {
			return apperror.ErrInvalidCommissionRule(fmt.Sprintf("rule %d has unknown type %q", i, r.Type))
		}
		if r.Type == CommissionPercentage && (r.Value < 0 || r.Value > 100) {
			return apperror.ErrInvalidCommissionRule(fmt.Sprintf("rule %d percentage out of [0,100]", i))
		}
		if r.Type == CommissionAmount && r.Value < 0 {
			return apperror.ErrInvalidCommissionRule(fmt.Sprintf("rule %d amount is negative", i))
		}
		if r.MinOrderAmount < 0 {
			return apperror.ErrInvalidCommissionRule(fmt.Sprintf("rule %d min order amount is negative", i))
		}
		if r.MaxOrderAmount != nil && *r.MaxOrderAmount <= r.MinOrderAmount {
			return apperror.ErrInvalidCommissionRule(fmt.Sprintf("rule %d max must be strictly greater than min", i))
		}
	}

	for i := 0; i < len(c.Rules); i++ {
		for j := i + 1; j < len(c.Rules); j++ {
			if rangesOverlap(c.Rules[i], c.Rules[j]) {
				return apperror.ErrOverlappingCommissionBands()
			}
		}
	}

	if c.DefaultCommission != nil {
		d := c.DefaultCommission
		if d.Type != CommissionPercentage && d.Type != CommissionAmount {
			return apperror.ErrInvalidCommissionRule(fmt.Sprintf("default commission has unknown type %q", d.Type))
		}
		if d.Type == CommissionPercentage && (d.Value < 0 || d.Value > 100) {
			return apperror.ErrInvalidCommissionRule("default commission percentage out of [0,100]")
		}
		if d.Type == CommissionAmount && d.Value < 0 {
			return apperror.ErrInvalidCommissionRule("default commission amount is negative")
		}
	}

	return nil
}

// rangesOverlap checks two half-open [min, max) bands; nil max is unbounded.
func rangesOverlap(a, b CommissionRule) bool {
	aEndsBeforeB := a.MaxOrderAmount != nil && *a.MaxOrderAmount <= b.MinOrderAmount
	bEndsBeforeA := b.MaxOrderAmount != nil && *b.MaxOrderAmount <= a.MinOrderAmount
	return !aEndsBeforeB && !bEndsBeforeA
}

// Resolve picks the applicable commission for an order amount: first matching
// band, else the default. Validated configs have disjoint bands, so
// "first match" is unambiguous.
func (c *CommissionConfig) Resolve(orderAmount int64) (CommissionType, float64, bool) {
	for _, r := range c.Rules {
		if r.Matches(orderAmount) {
			return r.Type, r.Value, true
		}
	}
	if c.DefaultCommission != nil {
		return c.DefaultCommission.Type, c.DefaultCommission.Value, true
	}
	return "", 0, false
}

// CommissionResult is the outcome of a commission calculation.
type CommissionResult struct {
	CommissionType   CommissionType `json:"commission_type"`
	CommissionValue  float64        `json:"commission_value"`
	CommissionAmount int64          `json:"commission_amount"`
	NetAmount        int64          `json:"net_amount"`
}

// ComputeCommission turns a resolved rule into concrete amounts. Percentage
// results round to the nearest smallest unit; a flat amount must not exceed
// the order amount.
func ComputeCommission(ct CommissionType, value float64, orderAmount int64) (*CommissionResult, error) {
	if orderAmount < 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	var commission int64
	switch ct {
	case CommissionPercentage:
		if value < 0 || value > 100 {
			return nil, apperror.ErrInvalidCommissionRule("percentage out of [0,100]")
		}
		commission = int64(math.Round(float64(orderAmount) * value / 100))
	case CommissionAmount:
		if value < 0 {
			return nil, apperror.ErrInvalidCommissionRule("amount is negative")
		}
		commission = int64(math.Round(value))
		if commission > orderAmount {
			return nil, apperror.ErrInvalidCommissionRule("amount exceeds order amount")
		}
	default:
		return nil, apperror.ErrInvalidCommissionRule(fmt.Sprintf("unknown type %q", ct))
	}

	return &CommissionResult{
		CommissionType:   ct,
		CommissionValue:  value,
		CommissionAmount: commission,
		NetAmount:        orderAmount - commission,
	}, nil
}
