package converter

import (
	dto "redblack/internal/api/dto/game"
	"redblack/internal/model"
)

func ToNewSession(req dto.CreateSessionRequest) model.NewSession {
	return model.NewSession{NewPlayer: req.NewPlayer}
}

func ToCreateSessionResponse(tok model.SessionToken, snap model.Snapshot) dto.CreateSessionResponse {
	return dto.CreateSessionResponse{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		Snapshot:  ToSnapshotResponse(snap),
	}
}

func ToCardResponse(c model.Card) dto.CardResponse {
	return dto.CardResponse{
		Suit:   string(c.Suit()),
		Rank:   c.Rank(),
		Color:  string(c.Color()),
		Golden: c.IsGolden(),
	}
}

func ToSnapshotResponse(s model.Snapshot) dto.SnapshotResponse {
	out := dto.SnapshotResponse{
		SessionID:       s.SessionID,
		Phase:           string(s.Phase),
		Balances:        make(map[string]int64, len(s.Balances)),
		BetAmount:       s.BetAmount,
		LastPayout:      s.LastPayout,
		ConsecutiveWins: s.ConsecutiveWins,
		IsGoldenRound:   s.IsGoldenRound,
		PendingPrize:    s.PendingPrize,
		CashoutBonus:    s.CashoutBonus,
		CashoutTimer:    s.CashoutTimer,
		CanCashout:      s.CanCashout,
		History:         make([]dto.HistoryEntryResponse, 0, len(s.History)),
		Upgrades: dto.UpgradesResponse{
			HistoryExtension: s.Upgrades.HistoryExtension,
			DoubleProgress:   s.Upgrades.DoubleProgress,
		},
		Stats:            toStatsResponse(s.Stats),
		SettlementPolicy: s.SettlementPolicy,
	}

	for c, v := range s.Balances {
		out.Balances[string(c)] = v
	}
	if s.BetChoice != nil {
		choice := s.BetChoice.String()
		out.BetChoice = &choice
	}
	if s.CurrentCard != nil {
		card := ToCardResponse(*s.CurrentCard)
		out.CurrentCard = &card
	}
	if s.Result != nil {
		result := string(*s.Result)
		out.Result = &result
	}
	for _, e := range s.History {
		out.History = append(out.History, dto.HistoryEntryResponse{
			Card:      ToCardResponse(e.Card),
			Result:    string(e.Result),
			Choice:    e.Choice.String(),
			Amount:    e.Amount,
			Timestamp: e.Timestamp,
		})
	}
	return out
}

func toStatsResponse(s model.BettingStats) dto.StatsResponse {
	out := dto.StatsResponse{
		TotalBets:         s.TotalBets,
		TotalWins:         s.TotalWins,
		ColorBets:         make(map[string]int, len(s.ColorBets)),
		SuitBets:          make(map[string]int, len(s.SuitBets)),
		ConsecutiveLosses: s.ConsecutiveLosses,
		RecentResults:     append([]bool{}, s.RecentResults...),
		RecentWinRate:     s.RecentWinRate,
		SessionLength:     s.SessionLength,
	}
	for c, n := range s.ColorBets {
		out.ColorBets[string(c)] = n
	}
	for suit, n := range s.SuitBets {
		out.SuitBets[string(suit)] = n
	}
	if s.FavoriteChoice != nil {
		fav := s.FavoriteChoice.String()
		out.FavoriteChoice = &fav
	}
	return out
}

func ToLedgerResponse(entries []model.LedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			Type:         string(e.Type),
			Currency:     string(e.Currency),
			Amount:       e.Amount,
			BalanceAfter: e.BalanceAfter,
			Reference:    e.Reference,
			Timestamp:    e.Timestamp,
		})
	}
	return out
}

func ToHouseReportResponse(r model.HouseReport) dto.HouseReportResponse {
	out := dto.HouseReportResponse{
		TotalRounds:     r.TotalRounds,
		TotalWagered:    r.TotalWagered,
		TotalPaid:       r.TotalPaid,
		Profit:          r.Profit,
		CurrentRTP:      r.CurrentRTP,
		WindowRTP:       r.WindowRTP,
		TargetRTP:       r.TargetRTP,
		CorrectionLevel: r.CorrectionLevel,
		EmergencyMode:   r.EmergencyMode,
		Adjustments:     make([]dto.HouseAdjustmentResponse, 0, len(r.Adjustments)),
		ActiveSessions:  r.ActiveSessions,
	}
	for _, a := range r.Adjustments {
		out.Adjustments = append(out.Adjustments, dto.HouseAdjustmentResponse{
			Timestamp: a.Timestamp,
			NewLevel:  a.NewLevel,
			Reason:    a.Reason,
			WindowRTP: a.WindowRTP,
		})
	}
	return out
}
