package profile

// NextTierPoints is the balance at which a member reaches the Platinum tier.
const NextTierPoints int64 = 1000

// TierProgress describes how far a balance is from the next tier.
type TierProgress struct {
	Target    int64   `json:"target"`
	Remaining int64   `json:"remaining"`
	Percent   float64 `json:"percent"`
}

// ProgressTowardNextTier reports progress capped at 100 percent.
func ProgressTowardNextTier(points int64) TierProgress {
	tp := TierProgress{Target: NextTierPoints}
	if points >= NextTierPoints {
		tp.Percent = 100
		return tp
	}
	if points < 0 {
		points = 0
	}
	tp.Remaining = NextTierPoints - points
	tp.Percent = float64(points) / float64(NextTierPoints) * 100
	return tp
}
