package core

import "time"

// BotRules tunes the opponent.
type BotRules struct {
	Tries          int           // seed cells sampled per action
	MaxSteps       int           // extension steps per walk
	StopAt         int           // a walk ends once it reaches this length
	FallbackPoints int           // awarded when no chain is found
	Interval       time.Duration // action interval in round and rule matches
	TimedBase      time.Duration // timed match interval at tier 1
	TimedStep      time.Duration // interval reduction per tier
	TimedMin       time.Duration
}

// DefaultBotRules returns the standard opponent pace.
func DefaultBotRules() BotRules {
	return BotRules{
		Tries:          30,
		MaxSteps:       4,
		StopAt:         3,
		FallbackPoints: 5,
		Interval:       1500 * time.Millisecond,
		TimedBase:      2500 * time.Millisecond,
		TimedStep:      200 * time.Millisecond,
		TimedMin:       800 * time.Millisecond,
	}
}

// IntervalFor returns the bot action interval. Timed matches speed up
// with the speed tier.
func (r BotRules) IntervalFor(timed bool, tier int) time.Duration {
	if !timed {
		return r.Interval
	}
	d := r.TimedBase - time.Duration(tier-1)*r.TimedStep
	if d < r.TimedMin {
		d = r.TimedMin
	}
	return d
}

// FindChain looks for a short chain the bot can claim. It samples random
// seed cells and extends each through random unvisited neighbors of the
// seed's color (or rainbow). The first walk of at least two tiles wins;
// an empty path means nothing was found. g is not modified.
func FindChain(g *Grid, r BotRules, src Source) Path {
	size := g.Size()
	for try := 0; try < r.Tries; try++ {
		row := intn(src, size)
		col := intn(src, size)
		start, ok := g.At(P(row, col))
		if !ok {
			continue
		}
		chain := Path{start}
		visited := map[Pos]bool{start.Pos(): true}
		for step := 0; step < r.MaxSteps; step++ {
			last := chain[len(chain)-1]
			var candidates []Tile
			for _, n := range neighbors(last.Pos()) {
				t, ok := g.At(n)
				if !ok || visited[n] {
					continue
				}
				if t.Rainbow || t.Color == start.Color {
					candidates = append(candidates, t)
				}
			}
			if len(candidates) == 0 {
				break
			}
			next := candidates[intn(src, len(candidates))]
			chain = append(chain, next)
			visited[next.Pos()] = true
			if len(chain) >= r.StopAt {
				break
			}
		}
		if len(chain) >= 2 {
			return chain
		}
	}
	return nil
}

// ChainPoints scores a bot chain: length × (gem multiplier or 1) × tile points.
func ChainPoints(chain Path, s Scoring) int {
	mult := 1
	if chain.HasGem() {
		mult = s.GemMultiplier
	}
	return len(chain) * mult * s.PointsPerTile
}

// neighbors lists the orthogonal neighbors of p: up, down, left, right.
func neighbors(p Pos) [4]Pos {
	return [4]Pos{
		P(p.Row-1, p.Col),
		P(p.Row+1, p.Col),
		P(p.Row, p.Col-1),
		P(p.Row, p.Col+1),
	}
}
