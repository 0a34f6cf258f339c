package pipeline

import "math/rand/v2"

// Draw bounds, inclusive.
const (
	MinDraw = 1
	MaxDraw = 9
)

// Dice is the randomness source of the worker computation.
type Dice interface {
	// Draw returns a value uniformly distributed in [MinDraw, MaxDraw].
	Draw() int

	// Flip returns true with probability 0.5.
	Flip() bool
}

type randomDice struct{}

// NewDice returns a Dice backed by the runtime-seeded global generator.
// It is safe for concurrent use.
func NewDice() Dice {
	return randomDice{}
}

func (randomDice) Draw() int {
	return MinDraw + rand.IntN(MaxDraw-MinDraw+1)
}

func (randomDice) Flip() bool {
	return rand.IntN(2) == 1
}
