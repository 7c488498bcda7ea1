package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/automoto/kickoff/server/soccer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_Status(t *testing.T) {
	cfg := testConfig()
	cfg.Name = "Pitch One"
	cfg.PitchName = "five"
	s := newTestServer(t, cfg)
	joinPeer(s, &fakePeer{id: "a"}, "", "")

	rec := httptest.NewRecorder()
	s.AdminHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, s.MatchID(), got.MatchID)
	assert.Equal(t, "Pitch One", got.Name)
	assert.Equal(t, "five", got.Pitch)
	assert.Equal(t, 1, got.Players)
	assert.Equal(t, 2, got.MaxPlayers)
}

func TestAdminHandler_Episodes(t *testing.T) {
	s := newTestServer(t, testConfig())
	for i := 1; i <= 4; i++ {
		s.results.Add(s.MatchID(), soccer.EpisodeResult{Number: i, Reason: soccer.EndTimeout})
	}
	h := s.AdminHandler(nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/episodes?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got episodesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Episodes, 2)
	assert.Equal(t, 4, got.Episodes[0].Number)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/episodes?limit=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/episodes", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAdminHandler_MountsExtra(t *testing.T) {
	s := newTestServer(t, testConfig())
	extra := map[string]http.Handler{
		"/metrics": http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("ok"))
		}),
	}

	rec := httptest.NewRecorder()
	s.AdminHandler(extra).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "ok", rec.Body.String())
}
