package game

import (
	"context"
	"errors"
	"net/http"
	dto "redblack/internal/api/dto/game"
	"redblack/internal/converter"
	"redblack/internal/middleware"
	"redblack/internal/model"
	"redblack/internal/service"
	gameServ "redblack/internal/service/game"
	"redblack/pkg/req"
	"redblack/pkg/resp"
	"redblack/pkg/token"
	"time"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv      service.GameService
	SecretKey []byte
	TokenTTL  time.Duration
	Log       *zap.Logger
}

type Handler struct {
	serv      service.GameService
	secretKey []byte
	tokenTTL  time.Duration
	log       *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Handler{
		serv:      deps.Serv,
		secretKey: deps.SecretKey,
		tokenTTL:  deps.TokenTTL,
		log:       deps.Log,
	}
}

// CreateSession opens a session and returns its bearer token with the first snapshot
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	payload := dto.CreateSessionRequest{}
	if r.ContentLength != 0 {
		var err error
		payload, err = req.Decode[dto.CreateSessionRequest](r.Body)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	snap, err := h.serv.CreateSession(r.Context(), converter.ToNewSession(payload))
	if err != nil {
		h.fail(w, err)
		return
	}

	signed, expiresAt, err := token.GenerateSessionToken(snap.SessionID, h.secretKey, h.tokenTTL)
	if err != nil {
		h.log.Error("failed to sign session token", zap.Error(err))
		_ = h.serv.EndSession(r.Context(), snap.SessionID)
		resp.WriteError(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}

	tok := model.SessionToken{SessionID: snap.SessionID, Token: signed, ExpiresAt: expiresAt}
	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToCreateSessionResponse(tok, snap))
}

func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string) (model.Snapshot, error) {
		return h.serv.Snapshot(r.Context(), id)
	})
}

func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "no session")
		return
	}
	if err := h.serv.EndSession(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PlaceBetRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	choice, err := model.ParseBetChoice(payload.Choice)
	if err != nil {
		h.fail(w, gameServ.ErrInvalidChoice)
		return
	}

	h.withSession(w, r, func(id string) (model.Snapshot, error) {
		return h.serv.PlaceBet(r.Context(), id, choice, payload.Amount)
	})
}

func (h *Handler) CloseResult(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string) (model.Snapshot, error) {
		return h.serv.CloseResult(r.Context(), id)
	})
}

func (h *Handler) CashOut(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CashOutRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	currency, err := model.ParseCurrency(payload.Currency)
	if err != nil {
		h.fail(w, gameServ.ErrInvalidCurrency)
		return
	}

	h.withSession(w, r, func(id string) (model.Snapshot, error) {
		return h.serv.CashOut(r.Context(), id, currency)
	})
}

func (h *Handler) Credit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreditRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	currency, err := model.ParseCurrency(payload.Currency)
	if err != nil {
		h.fail(w, gameServ.ErrInvalidCurrency)
		return
	}

	h.withSession(w, r, func(id string) (model.Snapshot, error) {
		return h.serv.Credit(r.Context(), id, currency, payload.Amount)
	})
}

func (h *Handler) BuyHistoryExtension(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string) (model.Snapshot, error) {
		return h.serv.BuyHistoryExtension(r.Context(), id)
	})
}

func (h *Handler) BuyDoubleProgress(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string) (model.Snapshot, error) {
		return h.serv.BuyDoubleProgress(r.Context(), id)
	})
}

func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "no session")
		return
	}
	entries, err := h.serv.Ledger(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLedgerResponse(entries))
}

func (h *Handler) HouseReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.serv.HouseReport(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHouseReportResponse(report))
}

func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, op func(id string) (model.Snapshot, error)) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "no session")
		return
	}

	snap, err := op(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSnapshotResponse(snap))
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
		resp.WriteError(w, status, "internal error")
		return
	}
	if status == StatusClientClosedRequest || status == http.StatusServiceUnavailable {
		h.log.Warn("request abandoned", zap.Error(err))
	}
	resp.WriteError(w, status, err.Error())
}

// StatusClientClosedRequest is the non-standard status for a request the client abandoned
const StatusClientClosedRequest = 499

// StatusFor maps a game error to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, gameServ.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, gameServ.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, gameServ.ErrRoundInFlight),
		errors.Is(err, gameServ.ErrNothingToClose),
		errors.Is(err, gameServ.ErrCashoutUnavailable),
		errors.Is(err, gameServ.ErrAlreadyOwned):
		return http.StatusConflict
	case errors.Is(err, gameServ.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, gameServ.ErrInvalidChoice),
		errors.Is(err, gameServ.ErrBetOutOfRange),
		errors.Is(err, gameServ.ErrInvalidCurrency),
		errors.Is(err, gameServ.ErrInvalidAmount):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
