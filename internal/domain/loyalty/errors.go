package loyalty

import "github.com/BruksfildServices01/barber-booking/internal/httperr"

var (
	ErrCustomerNotFound = httperr.New(
		httperr.KindNotFound,
		"customer_not_found",
		"Loyalty customer not found.",
	)
	ErrCustomerExists = httperr.New(
		httperr.KindConflict,
		"customer_exists",
		"A loyalty customer with this phone number already exists.",
	)
	ErrTransactionNotFound = httperr.New(
		httperr.KindNotFound,
		"transaction_not_found",
		"Point transaction not found.",
	)
	ErrRewardNotFound = httperr.New(
		httperr.KindNotFound,
		"reward_not_found",
		"Reward not found.",
	)
	ErrRewardInactive = httperr.New(
		httperr.KindUnprocessable,
		"reward_inactive",
		"This reward is no longer available.",
	)
	ErrTierTooLow = httperr.New(
		httperr.KindUnprocessable,
		"tier_too_low",
		"Your tier does not unlock this reward yet.",
	)
	ErrInsufficientPoints = httperr.New(
		httperr.KindUnprocessable,
		"insufficient_points",
		"Not enough points for this reward.",
	)
)
