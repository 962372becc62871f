package game

type PendingInput struct {
	Tick  uint64
	Input Input
}

// InputBuffer holds inputs a player sent ahead of the simulation, ordered by
// tick. It is not safe for concurrent use; the owning lobby serializes access.
type InputBuffer struct {
	pending []PendingInput
}

// NextExpected returns the lowest tick a new input may carry: one past the
// newest buffered input, or current when nothing is buffered.
func (b *InputBuffer) NextExpected(current uint64) uint64 {
	if n := len(b.pending); n > 0 {
		return b.pending[n-1].Tick + 1
	}
	return current
}

// Put stores in for tick, keeping the buffer sorted. A second input for the
// same tick replaces the first.
func (b *InputBuffer) Put(tick uint64, in Input) {
	i := len(b.pending)
	for i > 0 && b.pending[i-1].Tick >= tick {
		i--
	}
	if i < len(b.pending) && b.pending[i].Tick == tick {
		b.pending[i].Input = in
		return
	}
	b.pending = append(b.pending, PendingInput{})
	copy(b.pending[i+1:], b.pending[i:])
	b.pending[i] = PendingInput{Tick: tick, Input: in}
}

// Resolve returns the input due at tick. Entries older than tick arrived too
// late and are discarded; entries for later ticks stay buffered.
func (b *InputBuffer) Resolve(tick uint64) Input {
	drop := 0
	for drop < len(b.pending) && b.pending[drop].Tick < tick {
		drop++
	}
	b.pending = b.pending[drop:]
	if len(b.pending) > 0 && b.pending[0].Tick == tick {
		in := b.pending[0].Input
		b.pending = b.pending[1:]
		return in
	}
	return InputNone
}

func (b *InputBuffer) Len() int {
	return len(b.pending)
}
