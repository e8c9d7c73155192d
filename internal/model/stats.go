package model

// RecentResultsCap bounds BettingStats.RecentResults
const RecentResultsCap = 12

// BettingStats is the per session betting history. It lives in memory for the session
// lifetime and is never persisted.
type BettingStats struct {
	TotalBets         int
	TotalWins         int
	ColorBets         map[Color]int
	SuitBets          map[Suit]int
	ConsecutiveLosses int
	// RecentResults holds the newest results first
	RecentResults []bool
	// RecentWinRate is derived from RecentResults on every update
	RecentWinRate  float64
	FavoriteChoice *BetChoice
	SessionLength  int
}

func NewBettingStats() BettingStats {
	return BettingStats{
		ColorBets:     map[Color]int{ColorRed: 0, ColorBlack: 0},
		SuitBets:      map[Suit]int{SuitHearts: 0, SuitDiamonds: 0, SuitClubs: 0, SuitSpades: 0},
		RecentResults: make([]bool, 0, RecentResultsCap),
		RecentWinRate: 0.5,
	}
}

// OverallWinRate is totalWins/totalBets, 0 with no bets
func (s BettingStats) OverallWinRate() float64 {
	if s.TotalBets == 0 {
		return 0
	}
	return float64(s.TotalWins) / float64(s.TotalBets)
}

// CountFor returns how many times the choice was bet
func (s BettingStats) CountFor(c BetChoice) int {
	if c.IsColor() {
		return s.ColorBets[c.Color()]
	}
	return s.SuitBets[c.Suit()]
}

// Clone returns a deep copy
func (s BettingStats) Clone() BettingStats {
	out := s
	out.ColorBets = make(map[Color]int, len(s.ColorBets))
	for k, v := range s.ColorBets {
		out.ColorBets[k] = v
	}
	out.SuitBets = make(map[Suit]int, len(s.SuitBets))
	for k, v := range s.SuitBets {
		out.SuitBets[k] = v
	}
	out.RecentResults = append(make([]bool, 0, RecentResultsCap), s.RecentResults...)
	if s.FavoriteChoice != nil {
		fav := *s.FavoriteChoice
		out.FavoriteChoice = &fav
	}
	return out
}
