package core

// TargetRules controls how per-level collection targets are drawn.
type TargetRules struct {
	InitialColors int // colors tracked on the first level
	InitialBase   int // first-level target = InitialBase + [0, InitialSpread)
	InitialSpread int
	DeepBase      int // later target = DeepBase + [0, DeepSpread) + level*PerLevel
	DeepSpread    int
	PerLevel      int
	ColorStep     int // one more tracked color every ColorStep levels
	MaxColors     int
}

// DefaultTargetRules returns the standard target progression.
func DefaultTargetRules() TargetRules {
	return TargetRules{
		InitialColors: 2,
		InitialBase:   3,
		InitialSpread: 3,
		DeepBase:      5,
		DeepSpread:    5,
		PerLevel:      3,
		ColorStep:     3,
		MaxColors:     int(ColorCount),
	}
}

// Targets tracks required and collected counts per color for one level.
// Collected never exceeds Required.
type Targets struct {
	Required  [ColorCount]int
	Collected [ColorCount]int
	Tracked   [ColorCount]bool
}

// NewTargets draws targets for level. Level 1 uses the initial rules;
// deeper levels track more colors with larger counts. Colors are picked
// without replacement from the palette, then counts are drawn in pick
// order.
func NewTargets(level int, rules TargetRules, src Source) Targets {
	n := rules.InitialColors
	if level > 1 {
		n = min(rules.InitialColors+level/max(rules.ColorStep, 1), rules.MaxColors)
	}
	n = min(n, int(ColorCount))

	pool := AllColors()
	picked := make([]Color, 0, n)
	for len(picked) < n && len(pool) > 0 {
		i := intn(src, len(pool))
		picked = append(picked, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}

	var t Targets
	for _, c := range picked {
		t.Tracked[c] = true
		if level > 1 {
			t.Required[c] = intn(src, rules.DeepSpread) + rules.DeepBase + level*rules.PerLevel
		} else {
			t.Required[c] = intn(src, rules.InitialSpread) + rules.InitialBase
		}
	}
	return t
}

// IsTracked reports whether c has a target this level.
func (t Targets) IsTracked(c Color) bool {
	return c < ColorCount && t.Tracked[c]
}

// Collect credits n cleared tiles to color c, clamped to its target.
// Untracked colors are ignored.
func (t Targets) Collect(c Color, n int) Targets {
	if !t.IsTracked(c) {
		return t
	}
	t.Collected[c] = min(t.Collected[c]+n, t.Required[c])
	return t
}

// Complete reports whether every tracked color has met its target.
func (t Targets) Complete() bool {
	tracked := false
	for c := range t.Tracked {
		if !t.Tracked[c] {
			continue
		}
		tracked = true
		if t.Collected[c] < t.Required[c] {
			return false
		}
	}
	return tracked
}

// Colors returns the tracked colors in palette order.
func (t Targets) Colors() []Color {
	var out []Color
	for _, c := range AllColors() {
		if t.Tracked[c] {
			out = append(out, c)
		}
	}
	return out
}

// StarRules sets the fraction of the move limit that must remain for
// three and two stars.
type StarRules struct {
	Three float64
	Two   float64
}

// DefaultStarRules returns the standard star thresholds.
func DefaultStarRules() StarRules {
	return StarRules{Three: 0.5, Two: 0.25}
}

// Stars rates a completed level by the moves left after the final move.
func Stars(movesLeft, limit int, r StarRules) int {
	switch {
	case float64(movesLeft) > float64(limit)*r.Three:
		return 3
	case float64(movesLeft) > float64(limit)*r.Two:
		return 2
	default:
		return 1
	}
}
