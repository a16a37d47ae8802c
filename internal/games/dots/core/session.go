package core

import "time"

// Session is the complete state of one player's game. It is a value:
// Apply returns the next state and leaves the receiver untouched, so
// callers can keep old snapshots. The board is copied before any change.
type Session struct {
	Mode     Mode
	Rule     Rule
	Date     time.Time
	Opponent string

	Phase     Phase
	Paused    bool
	Reason    EndReason
	Result    Side
	MatchOver bool

	Grid      *Grid
	Selection Path

	Score     int
	BotScore  int
	HighScore int
	Moves     int
	Level     int
	BotLevel  int
	Combo     int
	Stars     int
	Targets   Targets
	PowerUps  Inventory

	Round        int
	PlayerRounds int
	BotRounds    int

	SpeedTier     int
	MoveTime      time.Duration // current per-move base in speed mode
	MoveTimeLeft  time.Duration
	MatchTimeLeft time.Duration
	SearchLeft    time.Duration
	CountdownLeft time.Duration
	Elapsed       time.Duration

	rules *Rules
	aux   Source // bot, shuffles, opponent names, unseeded boards
	board Source // board generation and refill
	lock  *DuelLock

	tierClock    time.Duration
	botClock     time.Duration
	advanceClock time.Duration
}

// NewSession creates a session in the mode menu. src drives every
// non-daily random draw; nil uses a clock-seeded source.
func NewSession(rules Rules, src Source) Session {
	if src == nil {
		src = NewClockSource()
	}
	return Session{
		Phase:    PhaseSelectingMode,
		Level:    1,
		BotLevel: 1,
		Round:    1,
		rules:    &rules,
		aux:      src,
		board:    src,
		lock:     &DuelLock{},
	}
}

// Rules returns the rules the session was created with.
func (s Session) Rules() Rules {
	return *s.rules
}

// Winner returns the side committed by a race, if any.
func (s Session) Winner() Side {
	return s.lock.Winner()
}

// fork copies the mutable parts a value copy would share: the duel lock
// and the random sources. Sources that alias each other stay aliased.
func (s Session) fork() Session {
	n := s
	n.lock = s.lock.fork()
	n.aux = cloneSource(s.aux)
	if s.board == s.aux {
		n.board = n.aux
	} else {
		n.board = cloneSource(s.board)
	}
	return n
}

// Accepting reports whether human gestures are currently applied.
func (s Session) Accepting() bool {
	return s.Phase == PhasePlaying && !s.Paused && s.Moves > 0
}

// Running reports whether session timers should be ticking.
func (s Session) Running() bool {
	if s.Paused {
		return false
	}
	switch s.Phase {
	case PhaseMatchmaking, PhasePlaying:
		return true
	case PhaseLevelComplete:
		return s.Mode == ModePvP && s.Rule == RuleLevel
	default:
		return false
	}
}

// Apply returns the state after ev and what happened.
func (s Session) Apply(ev Event) (Session, Effect) {
	n := s.fork()
	wasTerminal := n.Phase.Terminal()

	var eff Effect
	switch e := ev.(type) {
	case StartMode:
		n.startMode(e)
	case SelectStart:
		eff = n.selectAt(e.Row, e.Col, true)
	case SelectExtend:
		eff = n.selectAt(e.Row, e.Col, false)
	case SelectEnd:
		eff = n.commit()
	case UsePowerUp:
		eff = n.usePowerUp(e.Kind)
	case Pause:
		eff = n.pause()
	case Resume:
		eff = n.resume()
	case NextLevel:
		eff = n.nextLevel()
	case NewGame:
		eff = n.newGame()
	case ExitToMenu:
		n.Phase = PhaseSelectingMode
		n.Paused = false
		n.Selection = nil
	case Tick:
		eff = n.tick(e.DT)
	default:
		eff.Reason = ReasonNotPlaying
	}

	if n.Score > n.HighScore {
		n.HighScore = n.Score
	}
	if !wasTerminal && n.Phase.Terminal() {
		eff.Ended = true
	}
	return n, eff
}

func (s *Session) inputReason() Reason {
	switch {
	case s.Paused:
		return ReasonPaused
	case s.Phase != PhasePlaying:
		return ReasonNotPlaying
	case s.Moves <= 0:
		return ReasonBudgetExhausted
	default:
		return ReasonNone
	}
}

func (s *Session) selectAt(row, col int, restart bool) Effect {
	if r := s.inputReason(); r != ReasonNone {
		return Effect{Reason: r, Extend: rejected(r)}
	}
	t, ok := s.Grid.At(P(row, col))
	if !ok {
		return Effect{Reason: ReasonOutOfBounds, Extend: rejected(ReasonOutOfBounds)}
	}
	path := s.Selection
	if restart {
		path = nil
	}
	next, res := path.Extend(t)
	if !res.Accepted() {
		return Effect{Reason: res.Reason, Extend: res}
	}
	s.Selection = next
	return Effect{Extend: res}
}

// commit resolves the selection as one human move.
func (s *Session) commit() Effect {
	if r := s.inputReason(); r != ReasonNone {
		s.Selection = nil
		return Effect{Reason: r}
	}
	res, ok := Resolve(s.Grid, s.Selection, s.Combo, s.rules.Scoring)
	s.Selection = nil
	if !ok {
		return Effect{Reason: ReasonTooShort}
	}

	g := s.Grid.Clone()
	Remove(g, res.Cleared)
	g.Collapse(s.rules.RarityFor(s.Level), s.board)
	s.Grid = g

	s.Score += res.Points
	s.Combo++
	s.raceScore(SidePlayer)

	if s.Phase == PhasePlaying && s.Targets.IsTracked(res.Color) {
		s.Targets = s.Targets.Collect(res.Color, len(res.Cleared))
		if s.Targets.Complete() {
			s.Stars = Stars(s.Moves-1, s.rules.Moves, s.rules.Stars)
			s.Phase = PhaseLevelComplete
			s.advanceClock = 0
		}
	}

	s.Moves--
	if s.Mode == ModeSpeed {
		s.MoveTimeLeft = s.MoveTime
	}
	if s.Moves <= 0 && s.Phase == PhasePlaying {
		s.outOfMoves()
	}
	return Effect{Match: &res}
}

func (s *Session) outOfMoves() {
	switch {
	case s.Mode == ModePvP && s.Rule == RuleRounds:
		w := DecideWinner(s.Score, s.BotScore)
		switch w {
		case SidePlayer:
			s.PlayerRounds++
		case SideBot:
			s.BotRounds++
		}
		if abs(s.PlayerRounds-s.BotRounds) >= s.rules.PvP.RoundLead {
			s.end(EndRoundsDecided, DecideWinner(s.PlayerRounds, s.BotRounds))
			return
		}
		s.end(EndRoundOver, w)
	case s.Mode == ModePvPTimed:
		s.end(EndOutOfMoves, DecideWinner(s.Score, s.BotScore))
	default:
		s.end(EndOutOfMoves, SideNone)
	}
}

// end moves to GameOver. The combo always resets on a terminal transition.
func (s *Session) end(reason EndReason, result Side) {
	s.Phase = PhaseGameOver
	s.Reason = reason
	s.Result = result
	s.Combo = 0
	s.Selection = nil
	s.MatchOver = reason != EndRoundOver
}

// raceScore settles a score race after source changed its score. The
// duel lock makes the first qualifying update final.
func (s *Session) raceScore(source Side) {
	if s.Mode != ModePvP || s.Rule != RuleScore || s.Phase != PhasePlaying {
		return
	}
	w := RaceWinner(source, s.Score, s.BotScore, s.rules.PvP.TargetScore)
	if w == SideNone {
		return
	}
	if !s.lock.Commit(w) {
		return
	}
	s.end(EndScoreRace, w)
}

// raceLevel settles a level race. The player is checked first, so a
// same-evaluation tie goes to the player.
func (s *Session) raceLevel() {
	if s.Mode != ModePvP || s.Rule != RuleLevel {
		return
	}
	if s.Phase != PhasePlaying && s.Phase != PhaseLevelComplete {
		return
	}
	target := s.rules.PvP.TargetLevel
	var w Side
	switch {
	case s.Level >= target:
		w = SidePlayer
	case s.BotLevel >= target:
		w = SideBot
	default:
		return
	}
	if !s.lock.Commit(w) {
		return
	}
	s.end(EndLevelRace, w)
}

func (s *Session) usePowerUp(kind PowerUp) Effect {
	switch {
	case s.Paused:
		return Effect{Reason: ReasonPaused}
	case s.Phase != PhasePlaying:
		return Effect{Reason: ReasonNotPlaying}
	}
	inv, ok := s.PowerUps.Use(kind)
	if !ok {
		return Effect{Reason: ReasonEmptyInventory}
	}
	s.PowerUps = inv

	rarity := s.rules.RarityFor(s.Level)
	switch kind {
	case PowerBomb:
		g := s.Grid.Clone()
		center := P(g.Size()/2, g.Size()/2)
		Remove(g, ClearArea(g, center))
		g.Collapse(rarity, s.board)
		s.Grid = g
		s.Selection = nil
		s.Score += s.rules.BombBonus
		s.raceScore(SidePlayer)
	case PowerShuffle:
		g := s.Grid.Clone()
		g.Shuffle(rarity, s.aux)
		s.Grid = g
		s.Selection = nil
	case PowerExtraMoves:
		s.Moves += s.rules.ExtraMovesGrant
	}
	return Effect{}
}

func (s *Session) pause() Effect {
	if s.Paused {
		return Effect{Reason: ReasonPaused}
	}
	switch s.Phase {
	case PhaseMatchmaking, PhasePlaying, PhaseLevelComplete:
	default:
		return Effect{Reason: ReasonNotPlaying}
	}
	s.Paused = true
	s.Selection = nil
	return Effect{}
}

func (s *Session) resume() Effect {
	if !s.Paused {
		return Effect{Reason: ReasonNotPlaying}
	}
	s.Paused = false
	return Effect{}
}

func (s *Session) nextLevel() Effect {
	if s.Paused {
		return Effect{Reason: ReasonPaused}
	}
	switch {
	case s.Phase == PhaseLevelComplete:
		s.advanceLevel()
	case s.Phase == PhaseGameOver && s.Reason == EndRoundOver:
		s.Round++
		s.startGame(true)
	default:
		return Effect{Reason: ReasonNotPlaying}
	}
	return Effect{}
}

func (s *Session) advanceLevel() {
	level := s.Level + 1
	if level > s.rules.MaxLevels {
		s.Phase = PhaseWon
		s.Reason = EndAllLevels
		s.Result = SidePlayer
		s.MatchOver = true
		s.Combo = 0
		return
	}
	if s.Mode == ModeDaily {
		s.board = DailySource(s.Date, level)
	}
	s.Level = level
	s.Grid = Generate(s.rules.GridSizeFor(level), s.rules.RarityFor(level), s.board)
	s.Targets = NewTargets(level, s.rules.Targets, s.board)
	s.Moves = s.rules.Moves
	s.Combo = 0
	s.Stars = 0
	s.Selection = nil
	s.advanceClock = 0
	s.Phase = PhasePlaying
	s.raceLevel()
}

func (s *Session) newGame() Effect {
	if s.Phase == PhaseSelectingMode {
		return Effect{Reason: ReasonNotPlaying}
	}
	s.startGame(false)
	return Effect{}
}

func (s *Session) startMode(e StartMode) {
	s.Mode = e.Mode
	s.Rule = RuleRounds
	if e.Mode == ModePvP {
		s.Rule = e.Rule
	}
	s.Date = e.Date
	if s.Date.IsZero() {
		s.Date = time.Now()
	}
	s.Opponent = e.Opponent
	if e.Mode.Versus() && s.Opponent == "" {
		s.Opponent = PickOpponent(s.rules.Opponents, s.aux)
	}
	if !e.Mode.Versus() {
		s.startGame(false)
		return
	}

	mm := s.rules.Matchmaking
	search := mm.SearchMin
	if span := mm.SearchMax - mm.SearchMin; span > 0 {
		search += time.Duration(intn(s.aux, int(span/time.Second)+1)) * time.Second
	}
	s.SearchLeft = search
	s.CountdownLeft = mm.Countdown
	s.PlayerRounds, s.BotRounds, s.Round = 0, 0, 1
	s.Selection = nil
	s.Paused = false
	s.Phase = PhaseMatchmaking
}

// startGame deals a fresh first-level board and resets scores, moves,
// timers and power-ups. Round tallies survive when keepRounds is set.
func (s *Session) startGame(keepRounds bool) {
	r := s.rules
	if s.Mode == ModeDaily {
		s.board = DailySource(s.Date, 1)
	} else {
		s.board = s.aux
	}
	size := r.BaseGridSize
	if s.Mode.Versus() {
		size = r.PvPGridSize
	}
	s.Grid = Generate(size, r.Base, s.board)
	s.Targets = NewTargets(1, r.Targets, s.board)

	s.Score, s.BotScore = 0, 0
	s.Moves = r.Moves
	s.Level, s.BotLevel = 1, 1
	s.Combo, s.Stars = 0, 0
	s.PowerUps = r.PowerUps
	s.Result, s.Reason, s.MatchOver = SideNone, EndNone, false
	s.lock = &DuelLock{}

	s.SpeedTier = 1
	s.MoveTime = r.Speed.BaseMoveTime
	s.MoveTimeLeft = r.Speed.BaseMoveTime
	s.MatchTimeLeft = r.Timed.Duration
	s.SearchLeft, s.CountdownLeft = 0, 0
	s.Elapsed = 0
	s.tierClock, s.botClock, s.advanceClock = 0, 0, 0

	if !keepRounds {
		s.PlayerRounds, s.BotRounds, s.Round = 0, 0, 1
	}
	s.Selection = nil
	s.Paused = false
	s.Phase = PhasePlaying
}

func (s *Session) tick(dt time.Duration) Effect {
	if s.Paused {
		return Effect{Reason: ReasonPaused}
	}
	if dt <= 0 {
		return Effect{}
	}
	switch s.Phase {
	case PhaseMatchmaking:
		s.tickMatchmaking(dt)
	case PhaseLevelComplete:
		if s.Mode != ModePvP || s.Rule != RuleLevel {
			return Effect{Reason: ReasonNotPlaying}
		}
		s.advanceClock += dt
		if s.advanceClock >= s.rules.PvP.AutoAdvance {
			s.advanceLevel()
		}
	case PhasePlaying:
		return s.tickPlaying(dt)
	default:
		return Effect{Reason: ReasonNotPlaying}
	}
	return Effect{}
}

func (s *Session) tickMatchmaking(dt time.Duration) {
	if s.SearchLeft > 0 {
		s.SearchLeft -= dt
		if s.SearchLeft > 0 {
			return
		}
		dt = -s.SearchLeft
		s.SearchLeft = 0
	}
	s.CountdownLeft -= dt
	if s.CountdownLeft <= 0 {
		s.startGame(false)
	}
}

func (s *Session) tickPlaying(dt time.Duration) Effect {
	var eff Effect
	s.Elapsed += dt

	switch s.Mode {
	case ModeSpeed:
		sp := s.rules.Speed
		s.tierClock += dt
		for sp.TierEvery > 0 && s.tierClock >= sp.TierEvery {
			s.tierClock -= sp.TierEvery
			s.SpeedTier = min(s.SpeedTier+1, sp.MaxTier)
			s.MoveTime = max(s.MoveTime-sp.Step, sp.MinMoveTime)
		}
		s.MoveTimeLeft -= dt
		if s.MoveTimeLeft <= 0 {
			s.MoveTimeLeft = 0
			s.end(EndOutOfTime, SideNone)
			return eff
		}
	case ModePvPTimed:
		tm := s.rules.Timed
		s.tierClock += dt
		for tm.TierEvery > 0 && s.tierClock >= tm.TierEvery {
			s.tierClock -= tm.TierEvery
			s.SpeedTier = min(s.SpeedTier+1, tm.MaxTier)
		}
		s.MatchTimeLeft -= dt
		if s.MatchTimeLeft <= 0 {
			s.MatchTimeLeft = 0
			s.end(EndMatchTime, DecideWinner(s.Score, s.BotScore))
			return eff
		}
	}

	if s.Mode.Versus() {
		s.tickBot(dt, &eff)
	}
	return eff
}

// tickBot lets the bot act once per elapsed interval. The bot waits
// while the human is mid-selection and never touches the board.
func (s *Session) tickBot(dt time.Duration, eff *Effect) {
	interval := s.rules.Bot.IntervalFor(s.Mode == ModePvPTimed, s.SpeedTier)
	if interval <= 0 {
		return
	}
	s.botClock += dt
	for s.botClock >= interval && s.Phase == PhasePlaying {
		s.botClock -= interval
		if len(s.Selection) > 0 {
			continue
		}
		chain := FindChain(s.Grid, s.rules.Bot, s.aux)
		points := s.rules.Bot.FallbackPoints
		if len(chain) >= 2 {
			points = ChainPoints(chain, s.rules.Scoring)
		}
		s.BotScore += points
		eff.BotChain = chain
		eff.BotPoints += points
		if step := s.rules.PvP.BotLevelStep; step > 0 {
			s.BotLevel = s.BotScore/step + 1
		}
		s.raceScore(SideBot)
		s.raceLevel()
	}
}
