package model

import "time"

type RoundPhase string

const (
	PhaseIdle      RoundPhase = "idle"
	PhaseFlipping  RoundPhase = "flipping"
	PhaseRevealing RoundPhase = "revealing"
	PhaseSettled   RoundPhase = "settled"
)

type RoundResult string

const (
	ResultWin       RoundResult = "win"
	ResultLose      RoundResult = "lose"
	ResultGoldenWin RoundResult = "golden-win"
)

func (r RoundResult) Won() bool {
	return r == ResultWin || r == ResultGoldenWin
}

// SettlementPolicy names how wagers move money: the stake is debited when the bet is accepted
// and a win credits the payout with the stake included. The streak prize is a separate bucket.
const SettlementPolicy = "stake-up-front/payout-includes-stake"

// CardHistoryEntry is one settled round in the history log
type CardHistoryEntry struct {
	Card      Card
	Result    RoundResult
	Timestamp time.Time
	Choice    BetChoice
	Amount    int64
}

// Upgrades are the unlockable features bought in the shop
type Upgrades struct {
	HistoryExtension bool
	DoubleProgress   bool
}

// Snapshot is a read only copy of a session's round state
type Snapshot struct {
	SessionID string
	Phase     RoundPhase
	Balances  Balances

	BetAmount int64
	BetChoice *BetChoice
	// CurrentCard is nil while the card is face down and after the result is closed
	CurrentCard *Card
	Result      *RoundResult
	// Payout credited by the last settled round
	LastPayout int64

	ConsecutiveWins int
	IsGoldenRound   bool

	PendingPrize int64
	CashoutBonus float64
	// CashoutTimer holds the remaining seconds, nil when no window is open
	CashoutTimer *int
	CanCashout   bool

	History  []CardHistoryEntry
	Upgrades Upgrades
	Stats    BettingStats

	SettlementPolicy string
}

// InFlight reports whether a round is between bet and settlement
func (s Snapshot) InFlight() bool {
	return s.Phase == PhaseFlipping || s.Phase == PhaseRevealing
}
