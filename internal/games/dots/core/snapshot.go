package core

// Snapshot is a read-only view of a session for renderers and clients.
type Snapshot struct {
	Mode      string `json:"mode"`
	Rule      string `json:"rule,omitempty"`
	Opponent  string `json:"opponent,omitempty"`
	Phase     string `json:"phase"`
	Paused    bool   `json:"paused"`
	Result    string `json:"result"`
	Reason    string `json:"reason"`
	MatchOver bool   `json:"match_over"`

	Size      int       `json:"size"`
	Grid      [][]*Tile `json:"grid"`
	Selection []Pos     `json:"selection"`

	Score     int `json:"score"`
	BotScore  int `json:"bot_score"`
	HighScore int `json:"high_score"`
	Moves     int `json:"moves"`
	Level     int `json:"level"`
	BotLevel  int `json:"bot_level"`
	Combo     int `json:"combo"`
	Stars     int `json:"stars"`

	Targets  []TargetView `json:"targets"`
	PowerUps Inventory    `json:"power_ups"`

	Round        int `json:"round"`
	PlayerRounds int `json:"player_rounds"`
	BotRounds    int `json:"bot_rounds"`

	SpeedTier     int     `json:"speed_tier"`
	MoveTimeLeft  float64 `json:"move_time_left"`
	MatchTimeLeft float64 `json:"match_time_left"`
	SearchLeft    float64 `json:"search_left"`
	CountdownLeft float64 `json:"countdown_left"`
}

// TargetView is one color's progress.
type TargetView struct {
	Color     string `json:"color"`
	Required  int    `json:"required"`
	Collected int    `json:"collected"`
}

// Snapshot captures the session for presentation.
func (s Session) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:          s.Mode.String(),
		Opponent:      s.Opponent,
		Phase:         s.Phase.String(),
		Paused:        s.Paused,
		Result:        s.Result.String(),
		Reason:        s.Reason.String(),
		MatchOver:     s.MatchOver,
		Score:         s.Score,
		BotScore:      s.BotScore,
		HighScore:     s.HighScore,
		Moves:         s.Moves,
		Level:         s.Level,
		BotLevel:      s.BotLevel,
		Combo:         s.Combo,
		Stars:         s.Stars,
		PowerUps:      s.PowerUps,
		Round:         s.Round,
		PlayerRounds:  s.PlayerRounds,
		BotRounds:     s.BotRounds,
		SpeedTier:     s.SpeedTier,
		MoveTimeLeft:  s.MoveTimeLeft.Seconds(),
		MatchTimeLeft: s.MatchTimeLeft.Seconds(),
		SearchLeft:    s.SearchLeft.Seconds(),
		CountdownLeft: s.CountdownLeft.Seconds(),
	}
	if s.Mode == ModePvP {
		snap.Rule = s.Rule.String()
	}
	if s.Grid != nil {
		snap.Size = s.Grid.Size()
		snap.Grid = make([][]*Tile, s.Grid.Size())
		for r, row := range s.Grid.Rows() {
			snap.Grid[r] = make([]*Tile, len(row))
			for c, cell := range row {
				if cell.Filled {
					t := cell.Tile
					snap.Grid[r][c] = &t
				}
			}
		}
	}
	snap.Selection = make([]Pos, 0, len(s.Selection))
	for _, t := range s.Selection {
		snap.Selection = append(snap.Selection, t.Pos())
	}
	for _, c := range s.Targets.Colors() {
		snap.Targets = append(snap.Targets, TargetView{
			Color:     c.String(),
			Required:  s.Targets.Required[c],
			Collected: s.Targets.Collected[c],
		})
	}
	return snap
}
