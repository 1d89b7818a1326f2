package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var errInvalidID = httperr.Validation("invalid_id", "Invalid id.")

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// queryBarberID reads an optional barberId; absent means all barbers.
func queryBarberID(c *gin.Context) (*uint, error) {
	raw := c.Query("barberId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, httperr.Validation("invalid_barber_id", "barberId must be a positive integer.")
	}
	v := uint(id)
	return &v, nil
}

// queryDay parses a YYYY-MM-DD query value as a shop-local day.
func queryDay(c *gin.Context, name string, clock timezone.Clock) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDay(raw, clock().Location())
	if err != nil {
		return nil, err
	}
	return &d, nil
}
