package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoyaltyCustomer carries a projection of the customer's point ledger.
// TotalPoints, SpentPoints and Tier are never written outside a ledger append
// or a rebuild.
type LoyaltyCustomer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Phone string `gorm:"size:30;not null;uniqueIndex" json:"phone"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`

	TotalPoints int    `gorm:"not null;default:0" json:"total_points"`
	SpentPoints int    `gorm:"not null;default:0" json:"spent_points"`
	Tier        string `gorm:"size:20;not null;default:'Bronze'" json:"tier"`

	JoinedAt  time.Time  `json:"joined_at"`
	LastVisit *time.Time `json:"last_visit"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type PointTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint             `gorm:"not null;index" json:"customer_id"`
	Customer   *LoyaltyCustomer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Points int    `gorm:"not null" json:"points"`
	Type   string `gorm:"size:20;not null" json:"type"`
	Reason string `gorm:"size:255;not null" json:"reason"`

	ReferenceID   *uint  `gorm:"index:idx_point_tx_reference,priority:2" json:"reference_id"`
	ReferenceType string `gorm:"size:30;index:idx_point_tx_reference,priority:1" json:"reference_type"`

	CreatedAt time.Time `json:"created_at"`
}

type LoyaltyReward struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	PointsCost  int             `gorm:"not null" json:"points_cost"`
	RewardType  string          `gorm:"size:30;not null" json:"reward_type"`
	RewardValue decimal.Decimal `gorm:"type:numeric(10,2)" json:"reward_value"`
	MinTier     string          `gorm:"size:20;not null;default:'Bronze'" json:"min_tier"`
	Active      bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
}

type RewardRedemption struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	RewardID   uint           `gorm:"not null" json:"reward_id"`
	Reward     *LoyaltyReward `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"reward,omitempty"`

	PointsSpent int        `gorm:"not null" json:"points_spent"`
	Status      string     `gorm:"size:20;not null;default:'active'" json:"status"`
	UsedAt      *time.Time `json:"used_at"`
	ExpiresAt   time.Time  `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}
