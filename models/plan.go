package models

import (
	"fmt"
	"strings"
	"time"
)

// Plan is the closed set of subscription tiers the backend knows about.
type Plan string

const (
	PlanFree      Plan = "Free"
	PlanProLite   Plan = "Pro Lite"
	PlanPro       Plan = "Pro"
	PlanExclusive Plan = "Exclusive"
)

// PlanStatus is derived from the plan name and never stored on its own.
type PlanStatus string

const (
	StatusPaid PlanStatus = "PAID"
	StatusFree PlanStatus = "FREE"
)

var validPlans = []Plan{PlanFree, PlanProLite, PlanPro, PlanExclusive}

// ParsePlan matches case-insensitively and rejects anything outside the
// closed set so unknown strings never make it past the boundary.
func ParsePlan(name string) (Plan, error) {
	for _, p := range validPlans {
		if strings.EqualFold(string(p), name) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid plan type: %q", name)
}

// Status is FREE iff the plan is Free, PAID otherwise.
func (p Plan) Status() PlanStatus {
	if strings.EqualFold(string(p), string(PlanFree)) {
		return StatusFree
	}
	return StatusPaid
}

func (p Plan) Paid() bool {
	return p.Status() == StatusPaid
}

// PlanRecord is the last known entitlement state for a user. Status is
// always recomputed from PlanName on write; the two fields cannot drift.
type PlanRecord struct {
	PlanName  string     `json:"plan"`
	Status    PlanStatus `json:"status"`
	UpdatedAt time.Time  `json:"updatedAt"`
	UserID    string     `json:"userId,omitempty"`
}

// NewPlanRecord builds a record with the status derived from the plan.
func NewPlanRecord(p Plan, now time.Time) PlanRecord {
	return PlanRecord{
		PlanName:  string(p),
		Status:    p.Status(),
		UpdatedAt: now,
	}
}

// Fresh reports whether the record is younger than the freshness window.
func (r PlanRecord) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(r.UpdatedAt) < window
}

// Paid reports the entitlement verdict of the cached record.
func (r PlanRecord) Paid() bool {
	return r.Status == StatusPaid
}
