package loyalty

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var now = time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)

func newLedger(policy domain.AwardPolicy) (*Ledger, *memstore.Store) {
	store := memstore.New()
	return NewLedger(store, policy, timezone.Fixed(now), nil), store
}

func appointment(id uint, price string) *models.Appointment {
	return &models.Appointment{
		ID:            id,
		CustomerName:  "Maria",
		CustomerPhone: "+359888123456",
		CustomerEmail: "maria@example.com",
		Service:       &models.Service{Name: "Haircut", Price: decimal.RequireFromString(price)},
	}
}

func TestJoinAndLookup(t *testing.T) {
	l, _ := newLedger(domain.AwardOnBooking)
	ctx := context.Background()

	c, err := l.Join(ctx, JoinInput{Name: "Maria", Phone: "+359 888-123-456"})
	require.NoError(t, err)
	assert.Equal(t, "Bronze", c.Tier)
	assert.Equal(t, now, c.JoinedAt)

	_, err = l.Join(ctx, JoinInput{Name: "Other", Phone: "+359888123456"})
	assert.ErrorIs(t, err, domain.ErrCustomerExists)

	found, err := l.LookupByPhone(ctx, "+359 888 123 456")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	_, err = l.LookupByPhone(ctx, "0000000")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestEnsureCustomerIsIdempotent(t *testing.T) {
	l, _ := newLedger(domain.AwardOnBooking)
	ctx := context.Background()

	a, err := l.EnsureCustomer(ctx, "Maria", "+359888123456", "")
	require.NoError(t, err)
	b, err := l.EnsureCustomer(ctx, "Maria P.", "+359888123456", "")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestAwardFollowsPolicyAndIsIdempotent(t *testing.T) {
	l, store := newLedger(domain.AwardOnBooking)
	ctx := context.Background()
	ap := appointment(11, "40.00")

	require.NoError(t, l.AwardForAppointment(ctx, ap, domain.AwardOnCompletion))
	assert.Empty(t, store.Transactions())

	require.NoError(t, l.AwardForAppointment(ctx, ap, domain.AwardOnBooking))
	require.NoError(t, l.AwardForAppointment(ctx, ap, domain.AwardOnBooking))

	txs := store.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, 40, txs[0].Points)
	assert.Equal(t, domain.RefAppointment, txs[0].ReferenceType)

	c, err := l.LookupByPhone(ctx, ap.CustomerPhone)
	require.NoError(t, err)
	assert.Equal(t, 40, c.TotalPoints)
	require.NotNil(t, c.LastVisit)
}

func TestReverseWritesOneSpentEntry(t *testing.T) {
	l, store := newLedger(domain.AwardOnBooking)
	ctx := context.Background()
	ap := appointment(12, "25.99")

	require.NoError(t, l.ReverseForAppointment(ctx, ap))
	assert.Empty(t, store.Transactions())

	require.NoError(t, l.AwardForAppointment(ctx, ap, domain.AwardOnBooking))
	require.NoError(t, l.ReverseForAppointment(ctx, ap))
	require.NoError(t, l.ReverseForAppointment(ctx, ap))

	txs := store.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, -25, txs[1].Points)
	assert.Equal(t, string(domain.TxSpent), txs[1].Type)
	assert.Equal(t, domain.RefCancellation, txs[1].ReferenceType)

	c, err := l.LookupByPhone(ctx, ap.CustomerPhone)
	require.NoError(t, err)
	assert.Equal(t, 0, c.TotalPoints)
	assert.Equal(t, 25, c.SpentPoints)
}

func TestAppendSignsAndValidates(t *testing.T) {
	l, _ := newLedger(domain.AwardOnBooking)
	ctx := context.Background()

	c, err := l.Join(ctx, JoinInput{Name: "Maria", Phone: "+359888123456"})
	require.NoError(t, err)

	c, err = l.Append(ctx, EntryInput{CustomerID: c.ID, Points: 250, Type: "bonus", Reason: "welcome"})
	require.NoError(t, err)
	assert.Equal(t, "Silver", c.Tier)

	c, err = l.Append(ctx, EntryInput{CustomerID: c.ID, Points: 100, Type: "expired", Reason: "yearly expiry"})
	require.NoError(t, err)
	assert.Equal(t, 150, c.TotalPoints)
	assert.Equal(t, "Bronze", c.Tier)

	_, err = l.Append(ctx, EntryInput{CustomerID: c.ID, Points: 5, Type: "bonus"})
	assert.Error(t, err)

	_, err = l.Append(ctx, EntryInput{CustomerID: 999, Points: 5, Type: "bonus", Reason: "r"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	history, err := l.History(ctx, c.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, -100, history[0].Points)
}

func TestRebuildRepairsProjection(t *testing.T) {
	l, store := newLedger(domain.AwardOnBooking)
	ctx := context.Background()

	c, err := l.Join(ctx, JoinInput{Name: "Maria", Phone: "+359888123456"})
	require.NoError(t, err)
	_, err = l.Append(ctx, EntryInput{CustomerID: c.ID, Points: 520, Type: "earned", Reason: "visits"})
	require.NoError(t, err)

	store.Corrupt(c.ID, 3)

	c, err = l.Rebuild(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 520, c.TotalPoints)
	assert.Equal(t, "Gold", c.Tier)
}

func TestRedeem(t *testing.T) {
	l, _ := newLedger(domain.AwardOnBooking)
	ctx := context.Background()

	c, err := l.Join(ctx, JoinInput{Name: "Maria", Phone: "+359888123456"})
	require.NoError(t, err)

	reward, err := l.CreateReward(ctx, RewardInput{Name: "Free beard trim", PointsCost: 150, MinTier: "Silver"})
	require.NoError(t, err)

	_, err = l.Append(ctx, EntryInput{CustomerID: c.ID, Points: 180, Type: "earned", Reason: "visits"})
	require.NoError(t, err)

	_, err = l.Redeem(ctx, c.ID, reward.ID)
	assert.ErrorIs(t, err, domain.ErrTierTooLow)

	_, err = l.Append(ctx, EntryInput{CustomerID: c.ID, Points: 30, Type: "bonus", Reason: "promo"})
	require.NoError(t, err)

	res, err := l.Redeem(ctx, c.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, res.Customer.TotalPoints)
	assert.Equal(t, 150, res.Customer.SpentPoints)
	assert.Equal(t, domain.RedemptionActive, res.Redemption.Status)
	assert.Equal(t, now.Add(domain.RedemptionValidity), res.Redemption.ExpiresAt)

	_, err = l.Redeem(ctx, c.ID, reward.ID)
	assert.ErrorIs(t, err, domain.ErrTierTooLow)

	reds, err := l.Redemptions(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, reds, 1)
	require.NotNil(t, reds[0].Reward)
	assert.Equal(t, "Free beard trim", reds[0].Reward.Name)

	_, err = l.CreateReward(ctx, RewardInput{Name: "x", PointsCost: 10, MinTier: "Platinum"})
	assert.Error(t, err)
}
