package world

// Pool is a non-negative damage pool (armor, internal structure, CF, SI).
// The zero value is an empty pool with no capacity.
type Pool struct {
	cur int
	max int
}

// NewPool returns a full pool of n points. Negative n is treated as 0.
func NewPool(n int) Pool {
	if n < 0 {
		n = 0
	}
	return Pool{cur: n, max: n}
}

func (p Pool) Value() int { return p.cur }
func (p Pool) Max() int   { return p.max }

// Empty reports whether the pool had capacity and has been reduced to zero.
func (p Pool) Empty() bool { return p.max > 0 && p.cur == 0 }

// Absorb removes up to n points and returns the part of n the pool could not
// take.
func (p *Pool) Absorb(n int) (overflow int) {
	if n <= 0 {
		return 0
	}
	if p.cur >= n {
		p.cur -= n
		return 0
	}
	overflow = n - p.cur
	p.cur = 0
	return overflow
}

// Set overwrites the current value, clamped to [0, max]. Setting above the
// original capacity raises the capacity.
func (p *Pool) Set(n int) {
	if n < 0 {
		n = 0
	}
	if n > p.max {
		p.max = n
	}
	p.cur = n
}

// Zero empties the pool.
func (p *Pool) Zero() { p.cur = 0 }
