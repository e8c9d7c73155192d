package converter

import (
	"redblack/internal/model"
	"redblack/internal/service/game"
	"redblack/pkg/contracts/events"
	"time"
)

func ToRoundSettledEvent(s game.RoundSummary) events.RoundSettled {
	return events.RoundSettled{
		Type:            events.TypeRoundSettled,
		SessionID:       s.SessionID,
		Round:           s.Round,
		Choice:          s.Choice.String(),
		Amount:          s.Amount,
		CardSuit:        string(s.Card.Suit()),
		CardRank:        s.Card.Rank(),
		Golden:          s.Card.IsGolden(),
		Result:          string(s.Result),
		Payout:          s.Payout,
		WinProbability:  s.Odds.Final,
		ConsecutiveWins: s.ConsecutiveWins,
		PendingPrize:    s.PendingPrize,
		MilestoneHit:    s.MilestoneHit,
		TsUnixMs:        s.SettledAt.UnixMilli(),
	}
}

func ToCashedOutEvent(sessionID string, currency model.Currency, amount int64, at time.Time) events.CashedOut {
	return events.CashedOut{
		Type:      events.TypeCashedOut,
		SessionID: sessionID,
		Currency:  string(currency),
		Amount:    amount,
		TsUnixMs:  at.UnixMilli(),
	}
}

func ToSnapshotChangedEvent(snap model.Snapshot, at time.Time) events.SnapshotChanged {
	e := events.SnapshotChanged{
		SessionID:       snap.SessionID,
		Phase:           string(snap.Phase),
		Balances:        make(map[string]int64, len(snap.Balances)),
		ConsecutiveWins: snap.ConsecutiveWins,
		PendingPrize:    snap.PendingPrize,
		CashoutBonus:    snap.CashoutBonus,
		CashoutTimer:    snap.CashoutTimer,
		CanCashout:      snap.CanCashout,
		TsUnixMs:        at.UnixMilli(),
	}
	for c, v := range snap.Balances {
		e.Balances[string(c)] = v
	}
	if snap.CurrentCard != nil {
		e.CardSuit = string(snap.CurrentCard.Suit())
		e.CardRank = snap.CurrentCard.Rank()
	}
	if snap.Result != nil {
		e.Result = string(*snap.Result)
	}
	return e
}
