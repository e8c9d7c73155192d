package events

// SnapshotChanged is broadcast to UIs whenever a session's visible state moves
type SnapshotChanged struct {
	SessionID       string           `json:"session_id"`
	Phase           string           `json:"phase"`
	Balances        map[string]int64 `json:"balances"`
	CardSuit        string           `json:"card_suit,omitempty"`
	CardRank        string           `json:"card_rank,omitempty"`
	Result          string           `json:"result,omitempty"`
	ConsecutiveWins int              `json:"consecutive_wins"`
	PendingPrize    int64            `json:"pending_prize"`
	CashoutBonus    float64          `json:"cashout_bonus"`
	CashoutTimer    *int             `json:"cashout_timer"`
	CanCashout      bool             `json:"can_cashout"`
	TsUnixMs        int64            `json:"ts_unix_ms"`
}
