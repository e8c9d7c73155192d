package game

import "time"

type CreateSessionRequest struct {
	NewPlayer bool `json:"new_player"`
}

type CreateSessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Snapshot  SnapshotResponse `json:"snapshot"`
}

type PlaceBetRequest struct {
	Choice string `json:"choice"` // red, black, hearts, diamonds, clubs, spades
	Amount int64  `json:"amount"`
}

type CashOutRequest struct {
	Currency string `json:"currency"` // gold or sweep
}

type CreditRequest struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type CardResponse struct {
	Suit   string `json:"suit"`
	Rank   string `json:"rank"`
	Color  string `json:"color"`
	Golden bool   `json:"golden"`
}

type HistoryEntryResponse struct {
	Card      CardResponse `json:"card"`
	Result    string       `json:"result"`
	Choice    string       `json:"choice"`
	Amount    int64        `json:"amount"`
	Timestamp time.Time    `json:"timestamp"`
}

type StatsResponse struct {
	TotalBets         int            `json:"total_bets"`
	TotalWins         int            `json:"total_wins"`
	ColorBets         map[string]int `json:"color_bets"`
	SuitBets          map[string]int `json:"suit_bets"`
	ConsecutiveLosses int            `json:"consecutive_losses"`
	RecentResults     []bool         `json:"recent_results"`
	RecentWinRate     float64        `json:"recent_win_rate"`
	FavoriteChoice    *string        `json:"favorite_choice"`
	SessionLength     int            `json:"session_length"`
}

type UpgradesResponse struct {
	HistoryExtension bool `json:"history_extension"`
	DoubleProgress   bool `json:"double_progress"`
}

type SnapshotResponse struct {
	SessionID        string                 `json:"session_id"`
	Phase            string                 `json:"phase"`
	Balances         map[string]int64       `json:"balances"`
	BetAmount        int64                  `json:"bet_amount"`
	BetChoice        *string                `json:"bet_choice"`
	CurrentCard      *CardResponse          `json:"current_card"`
	Result           *string                `json:"result"`
	LastPayout       int64                  `json:"last_payout"`
	ConsecutiveWins  int                    `json:"consecutive_wins"`
	IsGoldenRound    bool                   `json:"is_golden_round"`
	PendingPrize     int64                  `json:"pending_prize"`
	CashoutBonus     float64                `json:"cashout_bonus"`
	CashoutTimer     *int                   `json:"cashout_timer"`
	CanCashout       bool                   `json:"can_cashout"`
	History          []HistoryEntryResponse `json:"history"`
	Upgrades         UpgradesResponse       `json:"upgrades"`
	Stats            StatsResponse          `json:"stats"`
	SettlementPolicy string                 `json:"settlement_policy"`
}

type LedgerEntryResponse struct {
	Type         string    `json:"type"`
	Currency     string    `json:"currency"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	Reference    string    `json:"reference"`
	Timestamp    time.Time `json:"timestamp"`
}

type HouseAdjustmentResponse struct {
	Timestamp time.Time `json:"timestamp"`
	NewLevel  int       `json:"new_level"`
	Reason    string    `json:"reason"`
	WindowRTP float64   `json:"window_rtp"`
}

type HouseReportResponse struct {
	TotalRounds     int                       `json:"total_rounds"`
	TotalWagered    float64                   `json:"total_wagered"`
	TotalPaid       float64                   `json:"total_paid"`
	Profit          float64                   `json:"profit"`
	CurrentRTP      float64                   `json:"current_rtp"`
	WindowRTP       float64                   `json:"window_rtp"`
	TargetRTP       float64                   `json:"target_rtp"`
	CorrectionLevel int                       `json:"correction_level"`
	EmergencyMode   bool                      `json:"emergency_mode"`
	Adjustments     []HouseAdjustmentResponse `json:"adjustments"`
	ActiveSessions  int                       `json:"active_sessions"`
}
