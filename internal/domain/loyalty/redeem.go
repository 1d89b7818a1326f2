package loyalty

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const RedemptionValidity = 30 * 24 * time.Hour

const (
	RedemptionActive  = "active"
	RedemptionUsed    = "used"
	RedemptionExpired = "expired"
)

// CheckRedeemable uses the net balance (TotalPoints) as the spendable amount.
func CheckRedeemable(c *models.LoyaltyCustomer, r *models.LoyaltyReward) error {
	if !r.Active {
		return ErrRewardInactive
	}

	minTier, ok := ParseTier(r.MinTier)
	if !ok {
		minTier = TierBronze
	}
	if TierFor(c.TotalPoints).Rank() < minTier.Rank() {
		return ErrTierTooLow
	}

	if c.TotalPoints < r.PointsCost {
		return ErrInsufficientPoints
	}

	return nil
}

// RedemptionEntry is the ledger entry that pays for a redemption.
func RedemptionEntry(red *models.RewardRedemption, reward *models.LoyaltyReward) *models.PointTransaction {
	ref := red.ID
	return &models.PointTransaction{
		CustomerID:    red.CustomerID,
		Points:        -red.PointsSpent,
		Type:          string(TxSpent),
		Reason:        fmt.Sprintf("Redeemed reward: %s", reward.Name),
		ReferenceID:   &ref,
		ReferenceType: RefRedemption,
	}
}
