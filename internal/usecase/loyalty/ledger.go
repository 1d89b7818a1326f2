package loyalty

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const defaultHistoryLimit = 10

// Ledger is the only writer of point transactions. Every change to a
// customer's balance goes through AppendTransaction so the projection and
// the log never diverge.
type Ledger struct {
	repo   domain.Repository
	policy domain.AwardPolicy
	clock  timezone.Clock
	audit  *audit.Dispatcher
}

func NewLedger(
	repo domain.Repository,
	policy domain.AwardPolicy,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *Ledger {
	if policy == "" {
		policy = domain.AwardOnBooking
	}
	return &Ledger{
		repo:   repo,
		policy: policy,
		clock:  clock,
		audit:  audit,
	}
}

func (l *Ledger) Policy() domain.AwardPolicy {
	return l.policy
}

// ======================================================
// CUSTOMERS
// ======================================================

// EnsureCustomer returns the member for phone, enrolling them when missing.
// Two concurrent first bookings for one phone both end up with the same row.
func (l *Ledger) EnsureCustomer(
	ctx context.Context,
	name, phone, email string,
) (*models.LoyaltyCustomer, error) {

	phone = validators.NormalizePhone(phone)

	c, err := l.repo.FindCustomerByPhone(ctx, phone)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, err
	}

	c = l.newCustomer(name, phone, email)
	if err := l.repo.CreateCustomer(ctx, c); err != nil {
		if errors.Is(err, domain.ErrCustomerExists) {
			return l.repo.FindCustomerByPhone(ctx, phone)
		}
		return nil, err
	}

	return c, nil
}

type JoinInput struct {
	Name  string
	Phone string
	Email string
}

func (l *Ledger) Join(ctx context.Context, in JoinInput) (*models.LoyaltyCustomer, error) {
	name := strings.TrimSpace(in.Name)
	phone := validators.NormalizePhone(in.Phone)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return nil, httperr.Validation("missing_name", "Name is required.")
	}
	if !validators.IsPhoneValid(phone) {
		return nil, httperr.Validation("invalid_phone", "Phone is not a valid number.")
	}
	if email != "" && !validators.IsEmailFormatValid(email) {
		return nil, httperr.Validation("invalid_email", "Email is not valid.")
	}

	c := l.newCustomer(name, phone, email)
	if err := l.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	l.audit.Dispatch(audit.Event{
		Actor:    audit.ActorCustomer,
		Action:   "loyalty_joined",
		Entity:   "loyalty_customer",
		EntityID: &c.ID,
	})

	return c, nil
}

func (l *Ledger) newCustomer(name, phone, email string) *models.LoyaltyCustomer {
	return &models.LoyaltyCustomer{
		Name:     strings.TrimSpace(name),
		Phone:    phone,
		Email:    email,
		Tier:     string(domain.TierBronze),
		JoinedAt: l.clock(),
	}
}

func (l *Ledger) LookupByPhone(ctx context.Context, phone string) (*models.LoyaltyCustomer, error) {
	phone = validators.NormalizePhone(phone)
	if phone == "" {
		return nil, httperr.Validation("missing_phone", "Phone is required.")
	}
	return l.repo.FindCustomerByPhone(ctx, phone)
}

func (l *Ledger) GetCustomer(ctx context.Context, id uint) (*models.LoyaltyCustomer, error) {
	return l.repo.GetCustomer(ctx, id)
}

func (l *Ledger) Customers(ctx context.Context) ([]models.LoyaltyCustomer, error) {
	return l.repo.ListCustomers(ctx)
}

// ======================================================
// LEDGER
// ======================================================

type EntryInput struct {
	CustomerID    uint
	Points        int
	Type          string
	Reason        string
	ReferenceID   *uint
	ReferenceType string
}

// Append signs the points by type before storing the entry, so callers pass
// magnitudes.
func (l *Ledger) Append(ctx context.Context, in EntryInput) (*models.LoyaltyCustomer, error) {
	t, err := domain.ParseTxType(in.Type)
	if err != nil {
		return nil, err
	}

	refType := in.ReferenceType
	if refType == "" {
		refType = domain.RefManual
	}

	tx := &models.PointTransaction{
		CustomerID:    in.CustomerID,
		Points:        domain.SignedPoints(t, in.Points),
		Type:          string(t),
		Reason:        strings.TrimSpace(in.Reason),
		ReferenceID:   in.ReferenceID,
		ReferenceType: refType,
		CreatedAt:     l.clock(),
	}

	if err := domain.ValidateEntry(tx); err != nil {
		return nil, err
	}

	c, err := l.repo.AppendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	metrics.PointsAppended.WithLabelValues(tx.Type).Inc()
	return c, nil
}

func (l *Ledger) History(ctx context.Context, customerID uint, limit int) ([]models.PointTransaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	if _, err := l.repo.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	return l.repo.ListTransactions(ctx, customerID, limit)
}

func (l *Ledger) Rebuild(ctx context.Context, customerID uint) (*models.LoyaltyCustomer, error) {
	c, err := l.repo.RebuildProjection(ctx, customerID)
	if err != nil {
		return nil, err
	}

	l.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   "loyalty_rebuilt",
		Entity:   "loyalty_customer",
		EntityID: &c.ID,
		Metadata: map[string]any{"total_points": c.TotalPoints, "tier": c.Tier},
	})

	return c, nil
}

// ======================================================
// BOOKING HOOKS
// ======================================================

// AwardForAppointment credits floor(price) points when event matches the
// configured policy. An appointment is credited at most once.
func (l *Ledger) AwardForAppointment(
	ctx context.Context,
	ap *models.Appointment,
	event domain.AwardPolicy,
) error {

	if event != l.policy {
		return nil
	}
	if ap.Service == nil {
		return fmt.Errorf("appointment %d has no service loaded", ap.ID)
	}

	points := domain.PointsForPrice(ap.Service.Price)
	if points <= 0 {
		return nil
	}

	_, err := l.repo.FindTransactionByReference(ctx, domain.RefAppointment, ap.ID, domain.TxEarned)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return err
	}

	c, err := l.EnsureCustomer(ctx, ap.CustomerName, ap.CustomerPhone, ap.CustomerEmail)
	if err != nil {
		return err
	}

	reason := "Points for service booking: " + ap.Service.Name
	if event == domain.AwardOnCompletion {
		reason = "Points for completed visit: " + ap.Service.Name
	}

	ref := ap.ID
	_, err = l.Append(ctx, EntryInput{
		CustomerID:    c.ID,
		Points:        points,
		Type:          string(domain.TxEarned),
		Reason:        reason,
		ReferenceID:   &ref,
		ReferenceType: domain.RefAppointment,
	})
	return err
}

// ReverseForAppointment writes one "spent" entry cancelling the points earned
// by ap. Nothing is written when no points were earned or when a reversal
// already exists.
func (l *Ledger) ReverseForAppointment(ctx context.Context, ap *models.Appointment) error {
	earned, err := l.repo.FindTransactionByReference(ctx, domain.RefAppointment, ap.ID, domain.TxEarned)
	if errors.Is(err, domain.ErrTransactionNotFound) {
		log.Debug().Uint("appointment_id", ap.ID).Msg("no earned points to reverse")
		return nil
	}
	if err != nil {
		return err
	}

	_, err = l.repo.FindTransactionByReference(ctx, domain.RefCancellation, ap.ID, domain.TxSpent)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return err
	}

	ref := ap.ID
	_, err = l.Append(ctx, EntryInput{
		CustomerID:    earned.CustomerID,
		Points:        earned.Points,
		Type:          string(domain.TxSpent),
		Reason:        fmt.Sprintf("Reversal for cancelled appointment #%d", ap.ID),
		ReferenceID:   &ref,
		ReferenceType: domain.RefCancellation,
	})
	return err
}
