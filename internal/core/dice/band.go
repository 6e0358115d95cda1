package dice

// criticalBandMax is the highest fail-die value treated as a critical failure.
const criticalBandMax = 2

// Band partitions fail-die outcomes.
type Band int

const (
	// BandNone indicates the value was outside the die's legal range.
	BandNone Band = iota
	// BandCritical covers fail-die values 1-2.
	BandCritical
	// BandRange covers fail-die values 3 through the die size.
	BandRange
)

// FailBand classifies a fail-die value against the die size.
// Values outside [1, sides] yield BandNone.
func FailBand(value, sides int) Band {
	if value < 1 || value > sides {
		return BandNone
	}
	if value <= criticalBandMax {
		return BandCritical
	}
	return BandRange
}
