package dice

import (
	"errors"
	"math/rand"
)

var (
	// ErrMissingDice indicates a roll request without dice specs.
	ErrMissingDice = errors.New("at least one dice spec is required")
	// ErrInvalidDiceSpec indicates a dice spec with non-positive sides or count.
	ErrInvalidDiceSpec = errors.New("dice spec sides and count must be positive")
)

// Spec describes a set of identical dice to roll.
type Spec struct {
	Sides int
	Count int
}

// Roll holds the results for one dice spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Request describes a seeded dice roll.
type Request struct {
	Dice []Spec
	Seed int64
}

// Result holds the rolls for a request plus the grand total.
type Result struct {
	Rolls []Roll
	Total int
}

// RollDice rolls dice based on the provided request.
//
// RollDice is deterministic with respect to the Seed field on Request:
// given the same Seed and the same Dice slice (including order and values),
// it always produces the same Result. Specs are processed in slice order
// and Result.Rolls preserves that order.
func RollDice(request Request) (Result, error) {
	if len(request.Dice) == 0 {
		return Result{}, ErrMissingDice
	}

	rng := rand.New(rand.NewSource(request.Seed))
	return RollWithRng(rng, request.Dice)
}

// RollWithRng rolls dice using a provided random source.
// This is useful when a caller rolls several times from one seeded stream.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0

	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}

		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := rollDie(rng, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
