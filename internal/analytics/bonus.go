package analytics

// BonusStrategy computes the bonus of the seller at rankIndex (zero-based,
// profit descending) out of totalSellers ranked sellers.
type BonusStrategy interface {
	Bonus(rankIndex, totalSellers int, profit float64) float64
}

// BonusFunc adapts an ordinary function to BonusStrategy.
type BonusFunc func(rankIndex, totalSellers int, profit float64) float64

// Bonus calls f(rankIndex, totalSellers, profit).
func (f BonusFunc) Bonus(rankIndex, totalSellers int, profit float64) float64 {
	return f(rankIndex, totalSellers, profit)
}

// DefaultBonus is the strategy used when Options.Bonus is nil.
var DefaultBonus BonusStrategy = BonusFunc(ComputeBonus)

// Bonus tiers, in percent of profit.
const (
	TopBonusPercent    = 15
	RunnerBonusPercent = 10
	MiddleBonusPercent = 5
	LastBonusPercent   = 0
)

// BonusPercent returns the tier percentage for a rank. Rank 0 always gets
// the top tier, even when it is also the last rank.
func BonusPercent(rankIndex, totalSellers int) float64 {
	switch {
	case rankIndex == 0:
		return TopBonusPercent
	case rankIndex == 1 || rankIndex == 2:
		return RunnerBonusPercent
	case rankIndex < totalSellers-1:
		return MiddleBonusPercent
	default:
		return LastBonusPercent
	}
}

// ComputeBonus returns profit * BonusPercent(rankIndex, totalSellers) / 100.
// Negative profit yields a negative (or zero) bonus.
func ComputeBonus(rankIndex, totalSellers int, profit float64) float64 {
	return profit * BonusPercent(rankIndex, totalSellers) / 100
}
