package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type LoyaltyGormRepository struct {
	db *gorm.DB
}

func NewLoyaltyGormRepository(db *gorm.DB) *LoyaltyGormRepository {
	return &LoyaltyGormRepository{db: db}
}

// --------------------------------------------------
// Customers
// --------------------------------------------------

func (r *LoyaltyGormRepository) GetCustomer(ctx context.Context, id uint) (*models.LoyaltyCustomer, error) {
	var c models.LoyaltyCustomer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, loyalty.ErrCustomerNotFound)
	}
	return &c, nil
}

func (r *LoyaltyGormRepository) FindCustomerByPhone(ctx context.Context, phone string) (*models.LoyaltyCustomer, error) {
	var c models.LoyaltyCustomer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&c).Error; err != nil {
		return nil, notFound(err, loyalty.ErrCustomerNotFound)
	}
	return &c, nil
}

func (r *LoyaltyGormRepository) CreateCustomer(ctx context.Context, c *models.LoyaltyCustomer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return loyalty.ErrCustomerExists
		}
		return err
	}
	return nil
}

func (r *LoyaltyGormRepository) ListCustomers(ctx context.Context) ([]models.LoyaltyCustomer, error) {
	var out []models.LoyaltyCustomer
	if err := r.db.WithContext(ctx).
		Order("total_points DESC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func lockCustomer(tx *gorm.DB, id uint) (*models.LoyaltyCustomer, error) {
	var c models.LoyaltyCustomer
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, id).Error; err != nil {
		return nil, notFound(err, loyalty.ErrCustomerNotFound)
	}
	return &c, nil
}

func saveProjection(tx *gorm.DB, c *models.LoyaltyCustomer) error {
	return tx.Model(c).
		Select("total_points", "spent_points", "tier", "last_visit", "updated_at").
		Updates(c).Error
}

func (r *LoyaltyGormRepository) AppendTransaction(ctx context.Context, entry *models.PointTransaction) (*models.LoyaltyCustomer, error) {
	var out *models.LoyaltyCustomer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCustomer(tx, entry.CustomerID)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
			return fmt.Errorf("insert point transaction: %w", err)
		}

		loyalty.ApplyEntry(c, entry)
		if err := saveProjection(tx, c); err != nil {
			return fmt.Errorf("update projection: %w", err)
		}

		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *LoyaltyGormRepository) FindTransactionByReference(
	ctx context.Context,
	refType string,
	refID uint,
	txType loyalty.TxType,
) (*models.PointTransaction, error) {

	var t models.PointTransaction
	if err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ? AND type = ?", refType, refID, string(txType)).
		Order("id ASC").
		First(&t).Error; err != nil {
		return nil, notFound(err, loyalty.ErrTransactionNotFound)
	}
	return &t, nil
}

func (r *LoyaltyGormRepository) ListTransactions(ctx context.Context, customerID uint, limit int) ([]models.PointTransaction, error) {
	q := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.PointTransaction
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LoyaltyGormRepository) RebuildProjection(ctx context.Context, customerID uint) (*models.LoyaltyCustomer, error) {
	var out *models.LoyaltyCustomer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCustomer(tx, customerID)
		if err != nil {
			return err
		}

		var txs []models.PointTransaction
		if err := tx.
			Where("customer_id = ?", customerID).
			Order("id ASC").
			Find(&txs).Error; err != nil {
			return err
		}

		loyalty.Project(c, txs)
		if err := saveProjection(tx, c); err != nil {
			return err
		}

		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// --------------------------------------------------
// Rewards
// --------------------------------------------------

func (r *LoyaltyGormRepository) ListRewards(ctx context.Context, activeOnly bool) ([]models.LoyaltyReward, error) {
	q := r.db.WithContext(ctx).Order("points_cost ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var out []models.LoyaltyReward
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LoyaltyGormRepository) GetReward(ctx context.Context, id uint) (*models.LoyaltyReward, error) {
	var rw models.LoyaltyReward
	if err := r.db.WithContext(ctx).First(&rw, id).Error; err != nil {
		return nil, notFound(err, loyalty.ErrRewardNotFound)
	}
	return &rw, nil
}

func (r *LoyaltyGormRepository) CreateReward(ctx context.Context, rw *models.LoyaltyReward) error {
	return r.db.WithContext(ctx).Create(rw).Error
}

func (r *LoyaltyGormRepository) Redeem(
	ctx context.Context,
	red *models.RewardRedemption,
	reward *models.LoyaltyReward,
) (*models.LoyaltyCustomer, error) {

	var out *models.LoyaltyCustomer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCustomer(tx, red.CustomerID)
		if err != nil {
			return err
		}

		if err := loyalty.CheckRedeemable(c, reward); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(red).Error; err != nil {
			return fmt.Errorf("insert redemption: %w", err)
		}

		entry := loyalty.RedemptionEntry(red, reward)
		if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
			return fmt.Errorf("insert point transaction: %w", err)
		}

		loyalty.ApplyEntry(c, entry)
		if err := saveProjection(tx, c); err != nil {
			return err
		}

		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *LoyaltyGormRepository) ListRedemptions(ctx context.Context, customerID uint) ([]models.RewardRedemption, error) {
	var out []models.RewardRedemption
	if err := r.db.WithContext(ctx).
		Preload("Reward").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ loyalty.Repository = (*LoyaltyGormRepository)(nil)
