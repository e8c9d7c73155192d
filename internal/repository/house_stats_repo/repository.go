package house_stats_repo

import (
	"math"
	repoModel "redblack/internal/repository/house_stats_repo/model"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// minRoundsToAdjust Rounds needed before any correction is considered
	minRoundsToAdjust = 1
	// periodRoundsToCheck Corrections are evaluated every N rounds
	periodRoundsToCheck = 25
	// maxAllowedRTPDeviation Window deviation in percentage points that triggers a standard correction
	maxAllowedRTPDeviation = 5.0
	// criticalRTPDeviation Window deviation that switches emergency mode on
	criticalRTPDeviation = 10.0
	// normalRTPDeviation Deviation under which emergency mode is switched off
	normalRTPDeviation = 5.0
	// maxCorrectionLevel Bound of the correction level in both directions
	maxCorrectionLevel = 2

	defaultTargetRTP  = 95.0
	defaultWindowSize = 500
)

// StateRepo keeps the house state in memory
type StateRepo struct {
	mtx   sync.RWMutex
	state repoModel.HouseState
	log   *zap.Logger
}

// NewHouseStatsRepository creates the repository with an empty window
func NewHouseStatsRepository(log *zap.Logger) *StateRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &StateRepo{
		log: log,
		state: repoModel.HouseState{
			CurrentRTP:  defaultTargetRTP,
			TargetRTP:   defaultTargetRTP,
			Adjustments: make([]repoModel.AdjustmentLog, 0),
			Window:      make([]repoModel.RoundSample, 0, defaultWindowSize),
			WindowSize:  defaultWindowSize,
		},
	}
}

// HouseState returns a copy of the current state
func (r *StateRepo) HouseState() repoModel.HouseState {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st := r.state
	st.Adjustments = append([]repoModel.AdjustmentLog(nil), r.state.Adjustments...)
	st.Window = append([]repoModel.RoundSample(nil), r.state.Window...)
	return st
}

// Correction returns the current correction level
func (r *StateRepo) Correction() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return r.state.CorrectionLevel
}

// UpdateState records a settled round or a cashout. Cashouts come in with zero wagered.
func (r *StateRepo) UpdateState(wagered, paid float64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if wagered > 0 {
		r.state.TotalRounds++
	}
	r.state.TotalWagered += wagered
	r.state.TotalPaid += paid
	if r.state.TotalWagered > 0 {
		r.state.CurrentRTP = r.state.TotalPaid / r.state.TotalWagered * 100
	}

	sampleRTP := 0.0
	if wagered > 0 {
		sampleRTP = paid / wagered * 100
	}
	r.state.Window = append(r.state.Window, repoModel.RoundSample{
		Wagered: wagered,
		Paid:    paid,
		RTP:     sampleRTP,
	})
	if len(r.state.Window) > r.state.WindowSize {
		r.state.Window = r.state.Window[len(r.state.Window)-r.state.WindowSize:]
	}

	var windowWagered, windowPaid float64
	for _, s := range r.state.Window {
		windowWagered += s.Wagered
		windowPaid += s.Paid
	}
	if windowWagered > 0 {
		r.state.WindowRTP = windowPaid / windowWagered * 100
	} else {
		r.state.WindowRTP = 0
	}
}

// SmartAutoAdjust moves the correction level when the window RTP drifts from target.
// Returns true when the level changed.
func (r *StateRepo) SmartAutoAdjust() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.state.TotalRounds <= minRoundsToAdjust || r.state.TotalRounds%periodRoundsToCheck != 0 {
		return false
	}
	if r.emergencyCheck() {
		return r.applyEmergencyAdjustment()
	}
	if r.standardCheck() {
		return r.applyStandardAdjustment()
	}
	return false
}

// emergencyCheck switches emergency mode on past the critical deviation and off once the
// window is back near target
func (r *StateRepo) emergencyCheck() bool {
	absoluteDiff := math.Abs(r.state.WindowRTP - r.state.TargetRTP)

	if absoluteDiff > criticalRTPDeviation {
		r.state.EmergencyMode = true
		if r.state.WindowRTP > r.state.TargetRTP {
			r.state.EmergencyDirection = "high"
		} else {
			r.state.EmergencyDirection = "low"
		}
		return true
	}
	if r.state.EmergencyMode && absoluteDiff < normalRTPDeviation {
		r.state.EmergencyMode = false
		r.state.EmergencyDirection = ""
	}
	return false
}

func (r *StateRepo) applyEmergencyAdjustment() bool {
	level := r.state.CorrectionLevel
	if r.state.EmergencyDirection == "high" {
		level--
	} else {
		level++
	}
	return r.applyAdjustment(level, "emergency")
}

func (r *StateRepo) standardCheck() bool {
	if r.state.EmergencyMode {
		return false
	}
	return math.Abs(r.state.WindowRTP-r.state.TargetRTP) > maxAllowedRTPDeviation
}

func (r *StateRepo) applyStandardAdjustment() bool {
	windowDiff := r.state.WindowRTP - r.state.TargetRTP

	switch {
	case windowDiff > maxAllowedRTPDeviation:
		return r.applyAdjustment(r.state.CorrectionLevel-1, "standard")
	case windowDiff < -maxAllowedRTPDeviation:
		return r.applyAdjustment(r.state.CorrectionLevel+1, "standard")
	}
	return false
}

func (r *StateRepo) applyAdjustment(newLevel int, reason string) bool {
	if newLevel == r.state.CorrectionLevel || newLevel < -maxCorrectionLevel || newLevel > maxCorrectionLevel {
		return false
	}

	profit := r.state.TotalWagered - r.state.TotalPaid
	r.log.Info("house correction changed",
		zap.Int("old_level", r.state.CorrectionLevel),
		zap.Int("new_level", newLevel),
		zap.String("reason", reason),
		zap.Float64("window_rtp", r.state.WindowRTP),
		zap.Float64("profit", profit),
	)

	r.state.Adjustments = append(r.state.Adjustments, repoModel.AdjustmentLog{
		Timestamp: time.Now(),
		NewLevel:  newLevel,
		Reason:    reason,
		WindowRTP: r.state.WindowRTP,
		Profit:    profit,
	})
	r.state.CorrectionLevel = newLevel
	return true
}
