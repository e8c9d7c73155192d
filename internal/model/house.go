package model

import "time"

// HouseReport is the house-wide return to player as shown to operators
type HouseReport struct {
	TotalRounds     int
	TotalWagered    float64
	TotalPaid       float64
	Profit          float64
	CurrentRTP      float64
	WindowRTP       float64
	TargetRTP       float64
	CorrectionLevel int
	EmergencyMode   bool
	Adjustments     []HouseAdjustment
	ActiveSessions  int
}

type HouseAdjustment struct {
	Timestamp time.Time
	NewLevel  int
	Reason    string
	WindowRTP float64
}
