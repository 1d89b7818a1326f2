package loyalty

type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
	TierVIP    Tier = "VIP"
)

const (
	silverThreshold = 200
	goldThreshold   = 500
	vipThreshold    = 1000
)

// TierFor classifies a point balance.
func TierFor(points int) Tier {
	switch {
	case points >= vipThreshold:
		return TierVIP
	case points >= goldThreshold:
		return TierGold
	case points >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

func (t Tier) Rank() int {
	switch t {
	case TierSilver:
		return 1
	case TierGold:
		return 2
	case TierVIP:
		return 3
	default:
		return 0
	}
}

func ParseTier(s string) (Tier, bool) {
	switch t := Tier(s); t {
	case TierBronze, TierSilver, TierGold, TierVIP:
		return t, true
	}
	return "", false
}
