package appointment

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	BulkDelete       = "delete"
	BulkUpdateStatus = "update_status"

	maxBulkIDs = 200
)

type BulkInput struct {
	Action string
	IDs    []uint
	Status string
}

type BulkFailure struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
}

type BulkResult struct {
	Action        string        `json:"action"`
	Requested     int           `json:"requested"`
	AffectedCount int           `json:"affected_count"`
	Failed        []BulkFailure `json:"failed"`
}

// BulkAppointments applies one action to many bookings. Each id is handled on
// its own; a failing id is reported and the rest carry on.
type BulkAppointments struct {
	del    *DeleteAppointment
	status *UpdateAppointmentStatus
	audit  *audit.Dispatcher
}

func NewBulkAppointments(
	del *DeleteAppointment,
	status *UpdateAppointmentStatus,
	audit *audit.Dispatcher,
) *BulkAppointments {
	return &BulkAppointments{
		del:    del,
		status: status,
		audit:  audit,
	}
}

func (uc *BulkAppointments) Execute(
	ctx context.Context,
	in BulkInput,
) (*BulkResult, error) {

	ids := dedupe(in.IDs)
	if len(ids) == 0 {
		return nil, httperr.Validation("missing_ids", "At least one appointment id is required.")
	}
	if len(ids) > maxBulkIDs {
		return nil, httperr.Validation("too_many_ids", "Too many appointment ids in one request.")
	}

	var run func(id uint) (bool, error)

	switch in.Action {
	case BulkDelete:
		run = func(id uint) (bool, error) {
			_, err := uc.del.Execute(ctx, id)
			return err == nil, err
		}

	case BulkUpdateStatus:
		if _, err := domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
		run = func(id uint) (bool, error) {
			_, moved, err := uc.status.apply(ctx, UpdateStatusInput{ID: id, Status: in.Status})
			return moved, err
		}

	default:
		return nil, httperr.Validation("invalid_action", "Action must be delete or update_status.")
	}

	res := &BulkResult{
		Action:    in.Action,
		Requested: len(ids),
		Failed:    []BulkFailure{},
	}

	for _, id := range ids {
		changed, err := run(id)
		if err != nil {
			res.Failed = append(res.Failed, BulkFailure{ID: id, Code: failureCode(err)})
			continue
		}
		if changed {
			res.AffectedCount++
		}
	}

	log.Info().
		Str("action", in.Action).
		Int("requested", res.Requested).
		Int("affected", res.AffectedCount).
		Int("failed", len(res.Failed)).
		Msg("bulk appointment action")

	uc.audit.Dispatch(audit.Event{
		Actor:  audit.ActorAdmin,
		Action: "appointments_bulk_" + in.Action,
		Entity: "appointment",
		Metadata: map[string]any{
			"ids":      ids,
			"status":   in.Status,
			"affected": res.AffectedCount,
		},
	})

	return res, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func failureCode(err error) string {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return "internal_error"
}
