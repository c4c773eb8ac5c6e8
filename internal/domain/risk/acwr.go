// Package risk derives the acute:chronic workload ratio and the high-risk
// labels from rolling minute sums.
package risk

// Variant names one of the two ACWR formulations that shipped over the life
// of the source dataset. They differ in the chronic denominator and in the
// gate that decides when the ratio is defined at all.
type Variant string

const (
	// VariantCoupled is canonical: chronic load is the trailing 28-day sum
	// averaged per week, defined once at least ChronicGateMinutes of chronic
	// load exist.
	VariantCoupled Variant = "coupled"
	// VariantUncoupled is the historical alternate: the acute week is
	// subtracted from the chronic window before averaging over the remaining
	// three weeks, gated only on that remainder being positive.
	VariantUncoupled Variant = "uncoupled"
)

func (v Variant) Valid() bool {
	return v == VariantCoupled || v == VariantUncoupled
}

// ChronicGateMinutes is the minimum trailing 28-day load for a coupled ACWR
// to be meaningful.
const ChronicGateMinutes = 180.0

// HighRiskThreshold flags overload once short-term load runs half again above
// the chronic weekly average.
const HighRiskThreshold = 1.5

// ACWR computes the acute:chronic workload ratio from the trailing 7-day and
// 28-day minute sums. It returns nil when the variant's chronic-sample gate
// fails; callers must propagate that as an undefined ratio, not as zero.
func ACWR(acute7, chronic28 float64, variant Variant) *float64 {
	switch variant {
	case VariantUncoupled:
		remainder := chronic28 - acute7
		if remainder <= 0 {
			return nil
		}
		ratio := acute7 / (remainder / 3.0)
		return &ratio
	default:
		if chronic28 < ChronicGateMinutes {
			return nil
		}
		ratio := acute7 / (chronic28 / 4.0)
		return &ratio
	}
}

// HighRisk binarizes an ACWR against the threshold. An undefined ratio is
// never high risk.
func HighRisk(acwr *float64) bool {
	return acwr != nil && *acwr > HighRiskThreshold
}

// ShiftNextLabel turns a partition's chronological label sequence into
// next-match labels: position i receives the label of position i+1, and the
// partition's final match gets nil because there is no next match to predict.
func ShiftNextLabel(labels []bool) []*bool {
	out := make([]*bool, len(labels))
	for i := 0; i+1 < len(labels); i++ {
		next := labels[i+1]
		out[i] = &next
	}
	return out
}
