// Package domain holds the pricing-rule records and contracts. Rules are
// admin-managed surge configuration feeding the dynamic fee calculator.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidID         = errors.New("pricingrule: invalid id")
	ErrInvalidName       = errors.New("pricingrule: name is required")
	ErrInvalidMultiplier = errors.New("pricingrule: multiplier must be positive")
	ErrInvalidCap        = errors.New("pricingrule: multiplier cap must not be negative")
	ErrInvalidPriority   = errors.New("pricingrule: priority must not be negative")
	ErrRuleNotFound      = errors.New("pricingrule: rule not found")
)

// PricingRule is an eligibility-gated multiplier. When an order's live
// conditions match every non-empty eligibility list, the rule's multiplier
// joins the dynamic calculator's demand-surge input, bounded by MaxMultiplier.
type PricingRule struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"type:text;not null" json:"name"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	Active         bool         `gorm:"not null;index" json:"active"`
	Priority       int          `gorm:"not null" json:"priority"`
	Cities         []string     `gorm:"serializer:json" json:"cities,omitempty"`
	Weather        []string     `gorm:"serializer:json" json:"weather,omitempty"`
	Traffic        []string     `gorm:"serializer:json" json:"traffic,omitempty"`
	TimesOfDay     []string     `gorm:"serializer:json" json:"times_of_day,omitempty"`
	MinDemandSurge float64      `gorm:"not null" json:"min_demand_surge"`
	Multiplier     float64      `gorm:"not null" json:"multiplier"`
	MaxMultiplier  float64      `gorm:"not null" json:"max_multiplier"`
	IdempotencyKey *string      `gorm:"uniqueIndex" json:"-"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (PricingRule) TableName() string { return "pricing_rules" }

// ConditionSnapshot is the live context a rule is matched against.
type ConditionSnapshot struct {
	City        string
	Weather     string
	Traffic     string
	TimeOfDay   string
	DemandSurge float64
}

type CreateRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Active         bool     `json:"active"`
	Priority       int      `json:"priority"`
	Cities         []string `json:"cities"`
	Weather        []string `json:"weather"`
	Traffic        []string `json:"traffic"`
	TimesOfDay     []string `json:"times_of_day"`
	MinDemandSurge float64  `json:"min_demand_surge"`
	Multiplier     float64  `json:"multiplier"`
	MaxMultiplier  float64  `json:"max_multiplier"`
	IdempotencyKey string   `json:"-"`
}

type ListRequest struct {
	ActiveOnly bool
	PageToken  string
	PageSize   int
}
