package loyalty

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func (l *Ledger) Rewards(ctx context.Context, activeOnly bool) ([]models.LoyaltyReward, error) {
	return l.repo.ListRewards(ctx, activeOnly)
}

type RewardInput struct {
	Name        string
	Description string
	PointsCost  int
	RewardType  string
	RewardValue decimal.Decimal
	MinTier     string
}

func (l *Ledger) CreateReward(ctx context.Context, in RewardInput) (*models.LoyaltyReward, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.Validation("missing_name", "Reward name is required.")
	}
	if in.PointsCost <= 0 {
		return nil, httperr.Validation("invalid_points_cost", "Points cost must be positive.")
	}

	tier := domain.TierBronze
	if in.MinTier != "" {
		t, ok := domain.ParseTier(in.MinTier)
		if !ok {
			return nil, httperr.Validation("invalid_tier", "Tier must be Bronze, Silver, Gold or VIP.")
		}
		tier = t
	}

	rewardType := strings.TrimSpace(in.RewardType)
	if rewardType == "" {
		rewardType = "discount"
	}

	rw := &models.LoyaltyReward{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		PointsCost:  in.PointsCost,
		RewardType:  rewardType,
		RewardValue: in.RewardValue,
		MinTier:     string(tier),
		Active:      true,
		CreatedAt:   l.clock(),
	}

	if err := l.repo.CreateReward(ctx, rw); err != nil {
		return nil, err
	}

	l.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   "reward_created",
		Entity:   "loyalty_reward",
		EntityID: &rw.ID,
	})

	return rw, nil
}

type RedeemResult struct {
	Redemption *models.RewardRedemption `json:"redemption"`
	Customer   *models.LoyaltyCustomer  `json:"customer"`
}

// Redeem checks eligibility up front for a clean error; the repository
// checks again under the customer lock.
func (l *Ledger) Redeem(ctx context.Context, customerID, rewardID uint) (*RedeemResult, error) {
	c, err := l.repo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	reward, err := l.repo.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckRedeemable(c, reward); err != nil {
		return nil, err
	}

	now := l.clock()
	red := &models.RewardRedemption{
		CustomerID:  c.ID,
		RewardID:    reward.ID,
		PointsSpent: reward.PointsCost,
		Status:      domain.RedemptionActive,
		ExpiresAt:   now.Add(domain.RedemptionValidity),
		CreatedAt:   now,
	}

	updated, err := l.repo.Redeem(ctx, red, reward)
	if err != nil {
		return nil, err
	}
	red.Reward = reward

	metrics.PointsAppended.WithLabelValues(string(domain.TxSpent)).Inc()

	l.audit.Dispatch(audit.Event{
		Actor:    audit.ActorCustomer,
		Action:   "reward_redeemed",
		Entity:   "reward_redemption",
		EntityID: &red.ID,
		Metadata: map[string]any{"customer_id": c.ID, "reward_id": reward.ID, "points": reward.PointsCost},
	})

	return &RedeemResult{Redemption: red, Customer: updated}, nil
}

func (l *Ledger) Redemptions(ctx context.Context, customerID uint) ([]models.RewardRedemption, error) {
	if _, err := l.repo.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return l.repo.ListRedemptions(ctx, customerID)
}
