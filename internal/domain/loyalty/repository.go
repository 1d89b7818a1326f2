package loyalty

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Customers --------
	GetCustomer(ctx context.Context, id uint) (*models.LoyaltyCustomer, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*models.LoyaltyCustomer, error)

	// CreateCustomer fails with ErrCustomerExists on a taken phone.
	CreateCustomer(ctx context.Context, c *models.LoyaltyCustomer) error

	// ListCustomers orders by total points, highest first.
	ListCustomers(ctx context.Context) ([]models.LoyaltyCustomer, error)

	// -------- Ledger --------

	// AppendTransaction inserts tx and folds it into the customer projection
	// in one transaction, holding the customer row lock.
	AppendTransaction(ctx context.Context, tx *models.PointTransaction) (*models.LoyaltyCustomer, error)

	FindTransactionByReference(ctx context.Context, refType string, refID uint, txType TxType) (*models.PointTransaction, error)

	// ListTransactions returns newest first; limit <= 0 means all.
	ListTransactions(ctx context.Context, customerID uint, limit int) ([]models.PointTransaction, error)

	// RebuildProjection recomputes the customer aggregate from the full log.
	RebuildProjection(ctx context.Context, customerID uint) (*models.LoyaltyCustomer, error)

	// -------- Rewards --------
	ListRewards(ctx context.Context, activeOnly bool) ([]models.LoyaltyReward, error)
	GetReward(ctx context.Context, id uint) (*models.LoyaltyReward, error)
	CreateReward(ctx context.Context, r *models.LoyaltyReward) error

	// Redeem re-checks CheckRedeemable under the customer lock, then stores
	// the redemption and its paying ledger entry atomically.
	Redeem(ctx context.Context, red *models.RewardRedemption, reward *models.LoyaltyReward) (*models.LoyaltyCustomer, error)
	ListRedemptions(ctx context.Context, customerID uint) ([]models.RewardRedemption, error)
}
