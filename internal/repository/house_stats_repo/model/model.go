package model

import "time"

// HouseState is the house-wide return to player across every session
type HouseState struct {
	TotalRounds  int     // How many rounds were settled
	TotalWagered float64 // Sum of all stakes
	TotalPaid    float64 // Sum of all payouts and cashouts

	CurrentRTP float64 // TotalPaid/TotalWagered*100
	TargetRTP  float64 // RTP the house steers to

	// CorrectionLevel nudges win probabilities, positive favors players
	CorrectionLevel int

	Adjustments []AdjustmentLog

	EmergencyMode      bool   // Window RTP is far off target
	EmergencyDirection string // "high" or "low"

	Window     []RoundSample // Most recent rounds
	WindowRTP  float64
	WindowSize int
}

// AdjustmentLog records one change of the correction level
type AdjustmentLog struct {
	Timestamp time.Time
	NewLevel  int
	Reason    string
	WindowRTP float64
	Profit    float64
}

// RoundSample is one settled round inside the window
type RoundSample struct {
	Wagered float64
	Paid    float64
	RTP     float64
}
