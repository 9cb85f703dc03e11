package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeptrader/internal/catalog"
	"deeptrader/internal/config"
	"deeptrader/internal/game"
	"deeptrader/internal/observability"
	"deeptrader/internal/store"
)

type testAPI struct {
	srv   *Server
	store *store.Memory
}

func newTestAPI(t *testing.T, token string) testAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := game.NewEngine(catalog.Default(), game.DefaultTuning(), game.NewSequenceRand(0.5), game.NewCounterIDs("id"), logger)
	mem := store.NewMemory()
	cfg := config.APIConfig{
		APIToken:      token,
		SessionCache:  2,
		FrameEvery:    50 * time.Millisecond,
		AutosaveEvery: time.Hour,
	}
	srv, err := New(cfg, logger, engine, mem, observability.NewMetrics("test", prometheus.NewRegistry()))
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return testAPI{srv: srv, store: mem}
}

func (a testAPI) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeSummary(t *testing.T, rec *httptest.ResponseRecorder) game.Summary {
	t.Helper()
	var sum game.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	return sum
}

const newGameBody = `{"player_name":"Ada","country_id":"USA"}`

func TestHealthzAndMetrics(t *testing.T) {
	a := newTestAPI(t, "secret")
	rec := a.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = a.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerToken(t *testing.T) {
	a := newTestAPI(t, "secret")

	rec := a.do(t, http.MethodGet, "/v1/catalog", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = a.do(t, http.MethodGet, "/v1/catalog", "", "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = a.do(t, http.MethodGet, "/v1/catalog", "", "Authorization", "Bearer secret")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Catalog     catalog.Catalog   `json:"catalog"`
		ActionTypes []game.ActionType `json:"action_types"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Catalog.Assets)
	assert.Contains(t, body.ActionTypes, game.ActSpotTrade)
}

func TestGameLifecycle(t *testing.T) {
	a := newTestAPI(t, "")

	rec := a.do(t, http.MethodPost, "/v1/games/main", newGameBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sum := decodeSummary(t, rec)
	assert.Equal(t, "Ada", sum.Player)
	assert.Equal(t, "USA", sum.Residency)

	_, err := a.store.Load(context.Background(), "main")
	require.NoError(t, err)

	rec = a.do(t, http.MethodPost, "/v1/games/main/actions",
		`{"type":"SPOT_TRADE","payload":{"asset_id":"AAPL","side":"buy","quantity":10}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.InDelta(t, 998_300.0, decodeSummary(t, rec).Cash, 1e-6)

	rec = a.do(t, http.MethodGet, "/v1/games/main", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state, err := game.DecodeState(rec.Body.Bytes())
	require.NoError(t, err)
	assert.InDelta(t, 10.0, state.Player.Portfolio["AAPL"].Quantity, 1e-9)

	rec = a.do(t, http.MethodPost, "/v1/games/main/save", "")
	require.Equal(t, http.StatusOK, rec.Code)
	saved, err := a.store.Load(context.Background(), "main")
	require.NoError(t, err)
	assert.InDelta(t, 998_300.0, saved.Player.Cash, 1e-6)

	rec = a.do(t, http.MethodDelete, "/v1/games/main", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(t, http.MethodGet, "/v1/games/main/summary", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActionErrors(t *testing.T) {
	a := newTestAPI(t, "")
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/v1/games/main", newGameBody).Code)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"unknown type", `{"type":"RAISE_TAXES"}`, http.StatusBadRequest},
		{"bad json", `{"type":`, http.StatusBadRequest},
		{"unknown asset", `{"type":"SPOT_TRADE","payload":{"asset_id":"NOPE","side":"buy","quantity":1}}`, http.StatusNotFound},
		{"too expensive", `{"type":"SPOT_TRADE","payload":{"asset_id":"AAPL","side":"buy","quantity":1000000}}`, http.StatusUnprocessableEntity},
		{"nothing to sell", `{"type":"SPOT_TRADE","payload":{"asset_id":"AAPL","side":"sell","quantity":1}}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := a.do(t, http.MethodPost, "/v1/games/main/actions", tc.body)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestNewGameRejects(t *testing.T) {
	a := newTestAPI(t, "")
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/v1/games/bad.slot", newGameBody).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, "/v1/games/main", `{"player":"Ada"}`).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodPost, "/v1/games/main", `{"player_name":"Ada","country_id":"ATLANTIS"}`).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/v1/games/ghost/summary", "").Code)
}

func TestEvictionSavesSession(t *testing.T) {
	a := newTestAPI(t, "")
	for _, slot := range []string{"one", "two"} {
		require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/v1/games/"+slot, newGameBody).Code)
	}
	rec := a.do(t, http.MethodPost, "/v1/games/one/actions", `{"type":"TAKE_LOAN","payload":{"amount":1000}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// cache holds two sessions; a third evicts the least recently used
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/v1/games/three", newGameBody).Code)
	assert.Equal(t, []string{"one", "three"}, a.srv.sessions.slots())

	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/v1/games/four", newGameBody).Code)
	saved, err := a.store.Load(context.Background(), "one")
	require.NoError(t, err)
	assert.InDelta(t, 1_001_000.0, saved.Player.Cash, 1e-6)

	rec = a.do(t, http.MethodGet, "/v1/games", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Games []store.SlotInfo `json:"games"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Len(t, listing.Games, 4)
}

func TestStream(t *testing.T) {
	a := newTestAPI(t, "")
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/v1/games/main", newGameBody).Code)

	ts := httptest.NewServer(a.srv.Handler())
	defer ts.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/v1/games/main/stream", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() streamMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
		var msg streamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}
	first := read()
	require.NotNil(t, first.Summary)
	assert.Equal(t, "Ada", first.Summary.Player)

	raw, err := game.EncodeAction(game.SetPaused{Paused: true})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))
	for {
		msg := read()
		if msg.Summary != nil && msg.Summary.Paused {
			break
		}
	}

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"NOPE"}`)))
	for {
		msg := read()
		if msg.Error != "" {
			assert.Contains(t, msg.Error, "unknown action type")
			break
		}
	}

	resp, err := http.Post(ts.URL+"/v1/games/main/actions", "application/json",
		bytes.NewBufferString(`{"type":"SET_SPEED","payload":{"speed":4}}`))
	require.NoError(t, err)
	resp.Body.Close()
	for {
		msg := read()
		if msg.Summary != nil && msg.Summary.Speed == 4 {
			break
		}
	}
}
