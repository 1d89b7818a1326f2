package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		start int
		delta int
		want  Tier
	}{
		{199, 1, TierSilver},
		{0, 199, TierBronze},
		{499, 1, TierGold},
		{999, 1, TierVIP},
		{1000, -500, TierGold},
		{1000, -501, TierSilver},
		{200, -1, TierBronze},
	}

	for _, tt := range tests {
		c := &models.LoyaltyCustomer{TotalPoints: tt.start}
		Apply(c, tt.delta)
		assert.Equal(t, string(tt.want), c.Tier, "start=%d delta=%d", tt.start, tt.delta)
		assert.Equal(t, tt.start+tt.delta, c.TotalPoints)
	}
}

func TestApplyTracksSpent(t *testing.T) {
	c := &models.LoyaltyCustomer{}

	Apply(c, 40)
	Apply(c, -40)
	Apply(c, 25)

	assert.Equal(t, 25, c.TotalPoints)
	assert.Equal(t, 40, c.SpentPoints)
	assert.Equal(t, string(TierBronze), c.Tier)
}

func TestProjectMatchesIncrementalApply(t *testing.T) {
	txs := []models.PointTransaction{
		{Points: 150}, {Points: 60}, {Points: -30}, {Points: 900},
	}

	incremental := &models.LoyaltyCustomer{}
	for _, tx := range txs {
		Apply(incremental, tx.Points)
	}

	rebuilt := &models.LoyaltyCustomer{TotalPoints: 12345, SpentPoints: 9, Tier: "VIP"}
	Project(rebuilt, txs)

	assert.Equal(t, incremental.TotalPoints, rebuilt.TotalPoints)
	assert.Equal(t, incremental.SpentPoints, rebuilt.SpentPoints)
	assert.Equal(t, incremental.Tier, rebuilt.Tier)
	assert.Equal(t, 1080, rebuilt.TotalPoints)
	assert.Equal(t, string(TierVIP), rebuilt.Tier)
}

func TestSignedPointsAndValidate(t *testing.T) {
	assert.Equal(t, -30, SignedPoints(TxSpent, 30))
	assert.Equal(t, -30, SignedPoints(TxExpired, -30))
	assert.Equal(t, 30, SignedPoints(TxBonus, -30))

	assert.NoError(t, ValidateEntry(&models.PointTransaction{Type: "earned", Points: 5, Reason: "r"}))
	assert.Error(t, ValidateEntry(&models.PointTransaction{Type: "earned", Points: -5, Reason: "r"}))
	assert.Error(t, ValidateEntry(&models.PointTransaction{Type: "spent", Points: 0, Reason: "r"}))
	assert.Error(t, ValidateEntry(&models.PointTransaction{Type: "gift", Points: 5, Reason: "r"}))
	assert.Error(t, ValidateEntry(&models.PointTransaction{Type: "bonus", Points: 5}))
}

func TestPointsForPrice(t *testing.T) {
	assert.Equal(t, 40, PointsForPrice(decimal.RequireFromString("40.00")))
	assert.Equal(t, 25, PointsForPrice(decimal.RequireFromString("25.99")))
	assert.Equal(t, 0, PointsForPrice(decimal.RequireFromString("0.50")))
	assert.Equal(t, 0, PointsForPrice(decimal.RequireFromString("-3")))
}

func TestCheckRedeemable(t *testing.T) {
	reward := &models.LoyaltyReward{Active: true, PointsCost: 300, MinTier: "Silver"}

	assert.NoError(t, CheckRedeemable(&models.LoyaltyCustomer{TotalPoints: 300}, reward))
	assert.ErrorIs(t, CheckRedeemable(&models.LoyaltyCustomer{TotalPoints: 150}, reward), ErrTierTooLow)

	gold := &models.LoyaltyReward{Active: true, PointsCost: 900, MinTier: "Gold"}
	assert.ErrorIs(t, CheckRedeemable(&models.LoyaltyCustomer{TotalPoints: 600}, gold), ErrInsufficientPoints)

	inactive := &models.LoyaltyReward{Active: false, PointsCost: 1}
	assert.ErrorIs(t, CheckRedeemable(&models.LoyaltyCustomer{TotalPoints: 600}, inactive), ErrRewardInactive)
}
