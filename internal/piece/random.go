package piece

import "math/rand"

// Randomizer picks the kind of the next piece.
type Randomizer interface {
	Next() Kind
}

// Uniform draws each kind independently with equal probability.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a uniform randomizer backed by rng.
func NewUniform(rng *rand.Rand) *Uniform {
	return &Uniform{rng: rng}
}

// Next returns a uniformly chosen kind.
func (u *Uniform) Next() Kind {
	kinds := Kinds()
	return kinds[u.rng.Intn(len(kinds))]
}

// Bag deals every kind once per shuffled bag of seven.
type Bag struct {
	rng *rand.Rand
	bag []Kind
}

// NewBag creates a 7-bag randomizer backed by rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// Next returns the next kind from the bag, refilling it when empty.
func (b *Bag) Next() Kind {
	if len(b.bag) == 0 {
		b.bag = Kinds()
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	k := b.bag[0]
	b.bag = b.bag[1:]
	return k
}

// Sequence replays a fixed list of kinds in order, wrapping around.
// Useful for scripted scenarios.
type Sequence struct {
	kinds []Kind
	pos   int
}

// NewSequence creates a randomizer that cycles through kinds.
func NewSequence(kinds ...Kind) *Sequence {
	return &Sequence{kinds: kinds}
}

// Next returns the next kind in the sequence.
func (s *Sequence) Next() Kind {
	if len(s.kinds) == 0 {
		return I
	}
	k := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return k
}
