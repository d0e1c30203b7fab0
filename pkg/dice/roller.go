// Package dice parses dice notation and turns it into rolls drawn from
// an injected source. It never generates its own randomness: the
// engine RNG (internal/engine) is the sole entropy source, so that
// determinism is never accidentally broken by a formula parser reaching
// for math/rand.
package dice

import (
	"errors"
	"regexp"
	"strconv"
)

// Source draws a single die result in [1, sides]. internal/engine's
// seeded RNG implements this so Roller never needs its own generator.
type Source interface {
	RollDie(sides int) int
}

var notationRE = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

type Roller struct {
	src Source
}

type RollResult struct {
	Dice     []int
	Modifier int
	Total    int
}

func NewRoller(src Source) *Roller {
	return &Roller{src: src}
}

// Roll parses dice notation like "2d6+3" or "1d20-2" and draws each die
// from the configured Source, in left-to-right order.
func (r *Roller) Roll(notation string) (*RollResult, error) {
	matches := notationRE.FindStringSubmatch(notation)
	if len(matches) == 0 {
		return nil, errors.New("invalid dice notation")
	}

	count, _ := strconv.Atoi(matches[1])
	sides, _ := strconv.Atoi(matches[2])

	modifier := 0
	if matches[3] != "" {
		modifier, _ = strconv.Atoi(matches[3])
	}

	if count < 1 || count > 100 {
		return nil, errors.New("dice count must be between 1 and 100")
	}
	if sides < 2 {
		return nil, errors.New("invalid dice type")
	}

	result := &RollResult{
		Dice:     make([]int, count),
		Modifier: modifier,
		Total:    modifier,
	}

	for i := 0; i < count; i++ {
		roll := r.src.RollDie(sides)
		result.Dice[i] = roll
		result.Total += roll
	}

	return result, nil
}

// RollN draws n dice of the given face count directly, bypassing
// notation parsing, for callers that already know (n, faces) rather
// than holding a formula string.
func (r *Roller) RollN(n, faces int) (sum int, rolls []int) {
	rolls = make([]int, n)
	for i := 0; i < n; i++ {
		rolls[i] = r.src.RollDie(faces)
		sum += rolls[i]
	}
	return sum, rolls
}
