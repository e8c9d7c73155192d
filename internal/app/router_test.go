package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	gameAPI "redblack/internal/api/game"
	"redblack/internal/config/env"
	"redblack/internal/repository/house_stats_repo"
	"redblack/internal/repository/ledger_repo"
	"redblack/internal/scheduler"
	"redblack/internal/service/game"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

type client struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func (c *client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	require.NoError(c.t, err)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	var out map[string]any
	if res.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(res.Body).Decode(&out))
	}
	return res.StatusCode, out
}

func TestRouterRoundTrip(t *testing.T) {
	clock := scheduler.NewManual(time.Unix(0, 0))
	serv := game.NewGameService(game.Deps{
		Config:    env.NewDefaultGameConfig(),
		Ledger:    ledger_repo.NewLedgerRepository(),
		House:     house_stats_repo.NewHouseStatsRepository(nil),
		Scheduler: clock,
	})
	defer func() { _ = serv.Shutdown(context.Background()) }()

	h := gameAPI.NewHandler(gameAPI.HandlerDeps{Serv: serv, SecretKey: secret, TokenTTL: time.Hour})
	srv := httptest.NewServer(NewRouter(h, secret))
	defer srv.Close()

	c := &client{t: t, srv: srv}

	status, _ := c.do(http.MethodGet, "/session", "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := c.do(http.MethodPost, "/sessions", `{"new_player":true}`)
	require.Equal(t, http.StatusCreated, status)
	c.token = body["token"].(string)
	require.NotEmpty(t, c.token)

	status, body = c.do(http.MethodPost, "/session/bet", `{"choice":"black","amount":250}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "flipping", body["phase"])
	assert.Nil(t, body["current_card"])

	status, _ = c.do(http.MethodPost, "/session/bet", `{"choice":"red","amount":100}`)
	assert.Equal(t, http.StatusConflict, status)

	clock.Advance(1500 * time.Millisecond)

	status, body = c.do(http.MethodGet, "/session", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "settled", body["phase"])
	assert.NotNil(t, body["current_card"])
	assert.NotNil(t, body["result"])
	assert.Len(t, body["history"], 1)

	status, body = c.do(http.MethodPost, "/session/close-result", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "idle", body["phase"])

	status, _ = c.do(http.MethodPost, "/session/close-result", "")
	assert.Equal(t, http.StatusConflict, status)

	status, body = c.do(http.MethodPost, "/session/credit", `{"currency":"sweep","amount":40}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 40.0, body["balances"].(map[string]any)["sweep"])

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/session/ledger", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+c.token)
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&entries))
	res.Body.Close()
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, "bet", entries[0]["type"])
	assert.Equal(t, -250.0, entries[0]["amount"])

	status, body = c.do(http.MethodGet, "/house", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["total_rounds"])
	assert.Equal(t, 1.0, body["active_sessions"])

	status, _ = c.do(http.MethodDelete, "/session", "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = c.do(http.MethodGet, "/session", "")
	assert.Equal(t, http.StatusNotFound, status)
}
