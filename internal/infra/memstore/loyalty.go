package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func (s *Store) GetCustomer(_ context.Context, id uint) (*models.LoyaltyCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, loyalty.ErrCustomerNotFound
	}
	out := *c
	return &out, nil
}

func (s *Store) FindCustomerByPhone(_ context.Context, phone string) (*models.LoyaltyCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Phone == phone {
			out := *c
			return &out, nil
		}
	}
	return nil, loyalty.ErrCustomerNotFound
}

func (s *Store) CreateCustomer(_ context.Context, c *models.LoyaltyCustomer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.customers {
		if other.Phone == c.Phone {
			return loyalty.ErrCustomerExists
		}
	}

	c.ID = s.nextID()
	row := *c
	s.customers[c.ID] = &row
	return nil
}

func (s *Store) ListCustomers(_ context.Context) ([]models.LoyaltyCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.LoyaltyCustomer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints == out[j].TotalPoints {
			return out[i].ID < out[j].ID
		}
		return out[i].TotalPoints > out[j].TotalPoints
	})
	return out, nil
}

// appendLocked inserts an entry and folds it into the projection. Callers
// hold mu.
func (s *Store) appendLocked(entry *models.PointTransaction) (*models.LoyaltyCustomer, error) {
	c, ok := s.customers[entry.CustomerID]
	if !ok {
		return nil, loyalty.ErrCustomerNotFound
	}

	entry.ID = s.nextID()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.transactions = append(s.transactions, *entry)

	loyalty.ApplyEntry(c, entry)
	c.UpdatedAt = entry.CreatedAt

	out := *c
	return &out, nil
}

func (s *Store) AppendTransaction(_ context.Context, entry *models.PointTransaction) (*models.LoyaltyCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(entry)
}

func (s *Store) FindTransactionByReference(
	_ context.Context,
	refType string,
	refID uint,
	txType loyalty.TxType,
) (*models.PointTransaction, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.transactions {
		if t.ReferenceType == refType && t.ReferenceID != nil && *t.ReferenceID == refID && t.Type == string(txType) {
			out := t
			return &out, nil
		}
	}
	return nil, loyalty.ErrTransactionNotFound
}

func (s *Store) ListTransactions(_ context.Context, customerID uint, limit int) ([]models.PointTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.PointTransaction{}
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if s.transactions[i].CustomerID != customerID {
			continue
		}
		out = append(out, s.transactions[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) RebuildProjection(_ context.Context, customerID uint) (*models.LoyaltyCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[customerID]
	if !ok {
		return nil, loyalty.ErrCustomerNotFound
	}

	var txs []models.PointTransaction
	for _, t := range s.transactions {
		if t.CustomerID == customerID {
			txs = append(txs, t)
		}
	}

	loyalty.Project(c, txs)
	out := *c
	return &out, nil
}

// Corrupt overwrites a projection so tests can check that a rebuild repairs it.
func (s *Store) Corrupt(customerID uint, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.customers[customerID]; ok {
		c.TotalPoints = total
	}
}

func (s *Store) ListRewards(_ context.Context, activeOnly bool) ([]models.LoyaltyReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.LoyaltyReward{}
	for _, r := range s.rewards {
		if activeOnly && !r.Active {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PointsCost < out[j].PointsCost })
	return out, nil
}

func (s *Store) GetReward(_ context.Context, id uint) (*models.LoyaltyReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rewards[id]
	if !ok {
		return nil, loyalty.ErrRewardNotFound
	}
	out := *r
	return &out, nil
}

func (s *Store) CreateReward(_ context.Context, r *models.LoyaltyReward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextID()
	row := *r
	s.rewards[r.ID] = &row
	return nil
}

func (s *Store) Redeem(
	_ context.Context,
	red *models.RewardRedemption,
	reward *models.LoyaltyReward,
) (*models.LoyaltyCustomer, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[red.CustomerID]
	if !ok {
		return nil, loyalty.ErrCustomerNotFound
	}
	if err := loyalty.CheckRedeemable(c, reward); err != nil {
		return nil, err
	}

	red.ID = s.nextID()
	s.redemptions = append(s.redemptions, *red)

	return s.appendLocked(loyalty.RedemptionEntry(red, reward))
}

func (s *Store) ListRedemptions(_ context.Context, customerID uint) ([]models.RewardRedemption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.RewardRedemption{}
	for i := len(s.redemptions) - 1; i >= 0; i-- {
		red := s.redemptions[i]
		if red.CustomerID != customerID {
			continue
		}
		if r, ok := s.rewards[red.RewardID]; ok {
			cp := *r
			red.Reward = &cp
		}
		out = append(out, red)
	}
	return out, nil
}

var _ loyalty.Repository = (*Store)(nil)
