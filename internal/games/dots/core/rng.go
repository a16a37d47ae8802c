package core

import "time"

// Source is a stream of pseudo-random numbers in [0, 1).
// Every generation call takes its Source explicitly.
type Source interface {
	Next() float64
}

// Mulberry32 is the seeded generator used for daily boards.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 creates a generator from a 32-bit seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next returns the next value in [0, 1).
func (m *Mulberry32) Next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Xorshift is a fast xorshift64 generator used for unseeded play.
type Xorshift struct {
	state uint64
}

// NewXorshift creates a generator with the given seed.
func NewXorshift(seed uint64) *Xorshift {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &Xorshift{state: seed}
}

// NewClockSource returns an Xorshift seeded from the wall clock.
func NewClockSource() *Xorshift {
	return NewXorshift(uint64(time.Now().UnixNano()))
}

// Next returns the next value in [0, 1).
func (x *Xorshift) Next() float64 {
	x.state ^= x.state << 13
	x.state ^= x.state >> 7
	x.state ^= x.state << 17
	return float64(x.state>>11) / float64(1<<53)
}

// DailySeed builds the seed for a calendar date and level: the decimal
// number YYYYMMDDLL (level zero-padded to two digits).
func DailySeed(date time.Time, level int) uint32 {
	n := date.Year()*1000000 + int(date.Month())*10000 + date.Day()*100 + level%100
	return uint32(n)
}

// DailySource returns the deterministic source for a date and level.
func DailySource(date time.Time, level int) *Mulberry32 {
	return NewMulberry32(DailySeed(date, level))
}

// cloneSource copies the state of the built-in generators. Other
// implementations are returned as is and stay shared.
func cloneSource(src Source) Source {
	switch v := src.(type) {
	case *Mulberry32:
		c := *v
		return &c
	case *Xorshift:
		c := *v
		return &c
	case *Sequence:
		c := *v
		return &c
	default:
		return src
	}
}

// intn maps the next value of src onto [0, n).
func intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Sequence replays a fixed list of values, cycling when exhausted.
// It is meant for tests and scripted boards.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a Sequence over values. An empty Sequence yields 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Next returns the next scripted value.
func (s *Sequence) Next() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}
