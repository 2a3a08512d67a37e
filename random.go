package chip8

import (
	"math/rand"
	"time"
)

// Random supplies the bytes consumed by the RND instruction.
type Random interface {
	Byte() uint8
}

type randomSource struct {
	r *rand.Rand
}

// NewRandom returns a Random seeded with seed. A zero seed uses the current
// time.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randomSource{r: rand.New(rand.NewSource(seed))}
}

func (rs *randomSource) Byte() uint8 {
	return uint8(rs.r.Intn(256))
}
