package linker

// Pool is a one-shot candidate pool. Items keep their insertion order and are
// never removed; claiming an item flips its bit so it cannot be handed out again.
type Pool struct {
	items   []string
	claimed bitset
}

// NewPool copies items into a fresh pool with nothing claimed.
func NewPool(items []string) *Pool {
	cp := make([]string, len(items))
	copy(cp, items)
	return &Pool{items: cp, claimed: newBitset(len(cp))}
}

// Claim hands out the first unclaimed item, in pool order, for which match
// returns true.
func (p *Pool) Claim(match func(item string) bool) (string, bool) {
	for i, item := range p.items {
		if p.claimed.has(i) || !match(item) {
			continue
		}
		p.claimed.set(i)
		return item, true
	}
	return "", false
}

// Remaining lists unclaimed items in pool order.
func (p *Pool) Remaining() []string {
	out := make([]string, 0, len(p.items))
	for i, item := range p.items {
		if !p.claimed.has(i) {
			out = append(out, item)
		}
	}
	return out
}

// Claimed lists claimed items in pool order.
func (p *Pool) Claimed() []string {
	var out []string
	for i, item := range p.items {
		if p.claimed.has(i) {
			out = append(out, item)
		}
	}
	return out
}

// Len is the number of unclaimed items.
func (p *Pool) Len() int {
	return len(p.items) - p.claimed.count()
}

type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int)      { b[i/64] |= 1 << (uint(i) % 64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<(uint(i)%64)) != 0 }

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}
