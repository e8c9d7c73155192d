package events

const (
	TypeRoundSettled = "round_settled"
	TypeCashedOut    = "cashed_out"
)

type RoundSettled struct {
	Type            string  `json:"type"`
	SessionID       string  `json:"session_id"`
	Round           uint64  `json:"round"`
	Choice          string  `json:"choice"`
	Amount          int64   `json:"amount"`
	CardSuit        string  `json:"card_suit"`
	CardRank        string  `json:"card_rank"`
	Golden          bool    `json:"golden"`
	Result          string  `json:"result"`
	Payout          int64   `json:"payout"`
	WinProbability  float64 `json:"win_probability"`
	ConsecutiveWins int     `json:"consecutive_wins"`
	PendingPrize    int64   `json:"pending_prize"`
	MilestoneHit    bool    `json:"milestone_hit"`
	TsUnixMs        int64   `json:"ts_unix_ms"`
}
