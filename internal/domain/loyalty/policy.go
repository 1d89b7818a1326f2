package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AwardPolicy selects the booking event that earns points.
type AwardPolicy string

const (
	AwardOnBooking    AwardPolicy = "booking"
	AwardOnCompletion AwardPolicy = "completion"
)

func ParsePolicy(s string) (AwardPolicy, error) {
	switch p := AwardPolicy(s); p {
	case AwardOnBooking, AwardOnCompletion:
		return p, nil
	}
	return "", fmt.Errorf("unknown award policy %q", s)
}

// PointsForPrice awards one point per whole currency unit.
func PointsForPrice(price decimal.Decimal) int {
	if !price.IsPositive() {
		return 0
	}
	return int(price.Floor().IntPart())
}
