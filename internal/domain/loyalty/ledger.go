package loyalty

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type TxType string

const (
	TxEarned  TxType = "earned"
	TxSpent   TxType = "spent"
	TxBonus   TxType = "bonus"
	TxExpired TxType = "expired"
)

// Reference types attached to ledger entries.
const (
	RefAppointment  = "appointment"
	RefCancellation = "cancellation"
	RefRedemption   = "reward_redemption"
	RefManual       = "manual"
)

func ParseTxType(s string) (TxType, error) {
	switch t := TxType(s); t {
	case TxEarned, TxSpent, TxBonus, TxExpired:
		return t, nil
	}
	return "", httperr.Validation("invalid_transaction_type", "Type must be earned, spent, bonus or expired.")
}

// SignedPoints returns points with the sign implied by the type: earned and
// bonus add, spent and expired subtract.
func SignedPoints(t TxType, points int) int {
	if points < 0 {
		points = -points
	}
	switch t {
	case TxSpent, TxExpired:
		return -points
	default:
		return points
	}
}

// Apply folds one ledger entry into the customer's projection. The total is
// a net balance: negative entries reduce it and are also added to the spent
// counter. The tier is recomputed from the new total.
func Apply(c *models.LoyaltyCustomer, points int) {
	c.TotalPoints += points
	if points < 0 {
		c.SpentPoints += -points
	}
	c.Tier = string(TierFor(c.TotalPoints))
}

// ApplyEntry folds a stored entry. Points earned for an appointment also
// move the last visit forward.
func ApplyEntry(c *models.LoyaltyCustomer, tx *models.PointTransaction) {
	Apply(c, tx.Points)

	if tx.ReferenceType == RefAppointment && tx.Points > 0 {
		at := tx.CreatedAt
		if c.LastVisit == nil || at.After(*c.LastVisit) {
			c.LastVisit = &at
		}
	}
}

// Project rebuilds the projection from the full log, oldest entry first.
func Project(c *models.LoyaltyCustomer, txs []models.PointTransaction) {
	c.TotalPoints = 0
	c.SpentPoints = 0
	c.Tier = string(TierBronze)

	for i := range txs {
		ApplyEntry(c, &txs[i])
	}
}

func ValidateEntry(tx *models.PointTransaction) error {
	t, err := ParseTxType(tx.Type)
	if err != nil {
		return err
	}
	if tx.Points == 0 {
		return httperr.Validation("zero_points", "Points must not be zero.")
	}
	if tx.Points != SignedPoints(t, tx.Points) {
		return httperr.Validation("points_sign", "Point sign does not match the transaction type.")
	}
	if tx.Reason == "" {
		return httperr.Validation("missing_reason", "Reason is required.")
	}
	return nil
}
