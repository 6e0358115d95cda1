package dice

import (
	"math/rand"
	"testing"
)

func TestRollDice_Basic(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr error
	}{
		{
			name: "single d20",
			request: Request{
				Dice: []Spec{{Sides: 20, Count: 1}},
				Seed: 42,
			},
			wantErr: nil,
		},
		{
			name: "d20 + fail die",
			request: Request{
				Dice: []Spec{
					{Sides: 20, Count: 1},
					{Sides: 4, Count: 1},
				},
				Seed: 42,
			},
			wantErr: nil,
		},
		{
			name: "no dice",
			request: Request{
				Dice: []Spec{},
				Seed: 42,
			},
			wantErr: ErrMissingDice,
		},
		{
			name: "invalid sides",
			request: Request{
				Dice: []Spec{{Sides: 0, Count: 1}},
				Seed: 42,
			},
			wantErr: ErrInvalidDiceSpec,
		},
		{
			name: "invalid count",
			request: Request{
				Dice: []Spec{{Sides: 6, Count: 0}},
				Seed: 42,
			},
			wantErr: ErrInvalidDiceSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RollDice(tt.request)
			if err != tt.wantErr {
				t.Errorf("RollDice() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				return
			}

			if len(result.Rolls) != len(tt.request.Dice) {
				t.Errorf("RollDice() got %d rolls, want %d", len(result.Rolls), len(tt.request.Dice))
			}
			for i, roll := range result.Rolls {
				if len(roll.Results) != tt.request.Dice[i].Count {
					t.Errorf("Roll[%d] got %d results, want %d", i, len(roll.Results), tt.request.Dice[i].Count)
				}
				for _, value := range roll.Results {
					if value < 1 || value > roll.Sides {
						t.Errorf("Roll[%d] value %d out of range [1, %d]", i, value, roll.Sides)
					}
				}
			}
		})
	}
}

func TestRollDice_Deterministic(t *testing.T) {
	request := Request{
		Dice: []Spec{{Sides: 20, Count: 1}, {Sides: 6, Count: 2}},
		Seed: 7,
	}

	first, err := RollDice(request)
	if err != nil {
		t.Fatalf("first roll: %v", err)
	}
	second, err := RollDice(request)
	if err != nil {
		t.Fatalf("second roll: %v", err)
	}

	if first.Total != second.Total {
		t.Errorf("totals differ: %d vs %d", first.Total, second.Total)
	}
	for i := range first.Rolls {
		for j := range first.Rolls[i].Results {
			if first.Rolls[i].Results[j] != second.Rolls[i].Results[j] {
				t.Errorf("roll %d result %d differs: %d vs %d", i, j,
					first.Rolls[i].Results[j], second.Rolls[i].Results[j])
			}
		}
	}
}

func TestRollWithRng_SharedStream(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	first, err := RollWithRng(rng, []Spec{{Sides: 20, Count: 1}})
	if err != nil {
		t.Fatalf("first roll: %v", err)
	}
	second, err := RollWithRng(rng, []Spec{{Sides: 20, Count: 1}})
	if err != nil {
		t.Fatalf("second roll: %v", err)
	}

	replay := rand.New(rand.NewSource(11))
	wantFirst := replay.Intn(20) + 1
	wantSecond := replay.Intn(20) + 1

	if first.Total != wantFirst || second.Total != wantSecond {
		t.Errorf("shared stream rolls = %d, %d, want %d, %d",
			first.Total, second.Total, wantFirst, wantSecond)
	}
}

func TestFailBand(t *testing.T) {
	tests := []struct {
		name  string
		value int
		sides int
		want  Band
	}{
		{"one is critical", 1, 4, BandCritical},
		{"two is critical", 2, 4, BandCritical},
		{"three is range", 3, 4, BandRange},
		{"die max is range", 4, 4, BandRange},
		{"zero is invalid", 0, 4, BandNone},
		{"above die size is invalid", 5, 4, BandNone},
		{"large die range", 19, 20, BandRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailBand(tt.value, tt.sides); got != tt.want {
				t.Errorf("FailBand(%d, %d) = %v, want %v", tt.value, tt.sides, got, tt.want)
			}
		})
	}
}
