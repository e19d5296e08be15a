package numberguess

import (
	"math/rand/v2"
	"sync"

	"github.com/rocketscienceinc/guessbot-backend/internal/entity"
)

type SecretSource interface {
	Draw() int
}

// RandomSource draws secrets uniformly from [MinNumber, MaxNumber].
type RandomSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomSource() *RandomSource {
	return &RandomSource{}
}

// NewSeededSource - returns a reproducible source, mostly for tests.
func NewSeededSource(seed1, seed2 uint64) *RandomSource {
	return &RandomSource{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

func (that *RandomSource) Draw() int {
	const outcomes = entity.MaxNumber - entity.MinNumber + 1

	if that.rnd == nil {
		return entity.MinNumber + rand.IntN(outcomes)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return entity.MinNumber + that.rnd.IntN(outcomes)
}
