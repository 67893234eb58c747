package deploy

import "math/rand"

// RandomSource supplies the coin flips that decide which columns drop.
type RandomSource interface {
	Bool() bool
	Intn(n int) int
}

type mathRandom struct {
	r *rand.Rand
}

// NewRandom returns a RandomSource seeded with seed. A seed of 0 is valid and
// produces the same sequence every time.
func NewRandom(seed int64) RandomSource {
	return &mathRandom{r: rand.New(rand.NewSource(seed))}
}

func (m *mathRandom) Bool() bool {
	return m.r.Intn(2) == 1
}

func (m *mathRandom) Intn(n int) int {
	return m.r.Intn(n)
}
